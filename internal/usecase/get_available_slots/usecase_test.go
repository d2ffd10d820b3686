package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeRepo struct {
	active []*domain.Appointment
}

func (r *fakeRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return r.active, nil
}

type fixedTime struct{ now time.Time }

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

// Понедельник 2024-03-18
var monday = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

var friday = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestExecute_EmptyDayReturnsAllSlots(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, friday)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[7].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[7].EndTime)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
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
	uc := newTestUseCase(repo, friday)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 7)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("10:00"), slot.StartTime)
	}
	// Соседний слот остается свободным
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_WeekendReturnsEmpty(t *testing.T) {
	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, friday)

	resp, err := uc.Execute(context.Background(), &Request{Date: saturday})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersElapsedSlots(t *testing.T) {
	// Сейчас 12:30, слоты 09:00-12:00 уже начались
	now := time.Date(2024, 3, 18, 12, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
}

func TestExecute_LongerDurationShrinksSlotList(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, friday)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 120})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("15:00"), last.StartTime)
	assert.Equal(t, types.TimeString("17:00"), last.EndTime)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{Date: monday})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, friday)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: -60})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
