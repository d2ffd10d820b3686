package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeRepo struct {
	active  []*domain.Appointment
	created *domain.Appointment
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	out := *appt
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.created = &out
	return &out, nil
}

func (r *fakeRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return r.active, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

// Понедельник 2024-03-18
var monday = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

func TestExecute_CreatesScheduledAppointment(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultServiceType, resp.ServiceType)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusScheduled, repo.created.Status)
}

func TestExecute_OverlappingSlotRejected(t *testing.T) {
	repo := &fakeRepo{
		active: []*domain.Appointment{
			{
				Date:      monday,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
				Status:    domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(repo, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_AdjacentSlotAllowed(t *testing.T) {
	repo := &fakeRepo{
		active: []*domain.Appointment{
			{
				Date:      monday,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
				Status:    domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(repo, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      monday,
		StartTime: types.TimeString("11:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{
		active: []*domain.Appointment{
			{
				Date:      monday,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
				Status:    domain.StatusCancelled,
			},
		},
	}
	uc := newTestUseCase(repo, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})

	require.NoError(t, err)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      saturday,
		StartTime: types.TimeString("10:00"),
	})

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    uuid.New(),
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	cases := []struct {
		name     string
		start    types.TimeString
		duration int
	}{
		{name: "before opening", start: types.TimeString("08:00"), duration: 60},
		{name: "crosses closing", start: types.TimeString("16:30"), duration: 60},
		{name: "after closing", start: types.TimeString("17:00"), duration: 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				UserID:          uuid.New(),
				Date:            monday,
				StartTime:       tc.start,
				DurationMinutes: tc.duration,
			})
			assert.ErrorIs(t, err, ErrOutsideBusinessHours)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	cases := []struct {
		name string
		req  *Request
	}{
		{
			name: "missing user",
			req:  &Request{Date: monday, StartTime: types.TimeString("10:00")},
		},
		{
			name: "missing date",
			req:  &Request{UserID: uuid.New(), StartTime: types.TimeString("10:00")},
		},
		{
			name: "malformed start time",
			req:  &Request{UserID: uuid.New(), Date: monday, StartTime: types.TimeString("25:99")},
		},
		{
			name: "negative duration",
			req:  &Request{UserID: uuid.New(), Date: monday, StartTime: types.TimeString("10:00"), DurationMinutes: -30},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
