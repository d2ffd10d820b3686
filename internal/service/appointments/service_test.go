package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeRepo struct {
	appointments map[uuid.UUID]*domain.Appointment
	cancelCalls  int
	updateCalls  int
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{appointments: make(map[uuid.UUID]*domain.Appointment)}
	for _, a := range appts {
		r.appointments[a.ID] = a
	}
	return r
}

func (r *fakeRepo) GetByIDAndUser(_ context.Context, id, userID uuid.UUID) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok || appt.UserID != userID {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

func (r *fakeRepo) GetByUser(_ context.Context, filter domain.UserAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *fakeRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.Date.Equal(date) && a.IsActive() {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id uuid.UUID) error {
	r.cancelCalls++
	appt, ok := r.appointments[id]
	if !ok || !appt.IsActive() {
		return apptRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, changes domain.AppointmentChanges) error {
	r.updateCalls++
	appt, ok := r.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	if changes.ServiceType != nil {
		appt.ServiceType = *changes.ServiceType
	}
	if changes.Notes != nil {
		appt.Notes = changes.Notes
	}
	if changes.Status != nil {
		appt.Status = *changes.Status
	}
	if changes.Date != nil {
		appt.Date = *changes.Date
	}
	if changes.StartTime != nil {
		appt.StartTime = *changes.StartTime
	}
	if changes.DurationMinutes != nil {
		appt.DurationMinutes = *changes.DurationMinutes
	}
	if changes.StartTime != nil || changes.DurationMinutes != nil {
		end, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			return err
		}
		appt.EndTime = end
	}
	return nil
}

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Понедельник 2024-03-18
var monday = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, tx *fakeTxManager) *Service {
	s := NewService(repo, tx, nopLogger{})
	s.timeProvider = &fixedTime{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	return s
}

func scheduledAppointment(userID uuid.UUID) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            monday,
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		ServiceType:     domain.DefaultServiceType,
		Status:          domain.StatusScheduled,
	}
}

func TestGetByID_WrongOwnerLooksNotFound(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	svc := newTestService(newFakeRepo(appt), &fakeTxManager{})

	_, err := svc.GetByID(context.Background(), appt.ID, uuid.New())

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_WrongOwnerLeavesAppointmentScheduled(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	svc := newTestService(repo, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), appt.ID, uuid.New())

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, domain.StatusScheduled, repo.appointments[appt.ID].Status)
	assert.Zero(t, repo.cancelCalls)
}

func TestCancel_SetsCancelledStatus(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	svc := newTestService(repo, &fakeTxManager{})

	cancelled, err := svc.Cancel(context.Background(), appt.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.appointments[appt.ID].Status)
	assert.NotNil(t, repo.appointments[appt.ID].CancelledAt)

	// Операция возвращает отмененную запись
	require.NotNil(t, cancelled)
	assert.Equal(t, appt.ID, cancelled.ID)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancel_SecondCancelIsNoOp(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	svc := newTestService(repo, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), appt.ID, owner)
	require.NoError(t, err)
	firstCancelledAt := *repo.appointments[appt.ID].CancelledAt

	repeated, err := svc.Cancel(context.Background(), appt.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, firstCancelledAt, *repo.appointments[appt.ID].CancelledAt)
	assert.Equal(t, 1, repo.cancelCalls)

	// Повторная отмена возвращает ту же запись с исходным cancelled_at
	require.NotNil(t, repeated)
	assert.Equal(t, string(domain.StatusCancelled), repeated.Status)
	require.NotNil(t, repeated.CancelledAt)
	assert.Equal(t, firstCancelledAt.Format(time.RFC3339), *repeated.CancelledAt)
}

func TestUpdate_NotesOnlySkipsAvailabilityCheck(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	tx := &fakeTxManager{}
	svc := newTestService(repo, tx)

	resp, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID: owner,
		Notes:  ptr.Ptr("bring insurance card"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "bring insurance card", *resp.Notes)
	assert.Zero(t, tx.calls)
}

func TestUpdate_RescheduleToFreeSlot(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	tx := &fakeTxManager{}
	svc := newTestService(repo, tx)

	resp, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID:    owner,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})

	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)
	assert.Equal(t, 1, tx.calls)
}

func TestUpdate_RescheduleToOccupiedSlotRejected(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	other := scheduledAppointment(uuid.New())
	other.StartTime = types.TimeString("14:00")
	other.EndTime = types.TimeString("15:00")
	repo := newFakeRepo(appt, other)
	svc := newTestService(repo, &fakeTxManager{})

	_, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID:    owner,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, types.TimeString("10:00"), repo.appointments[appt.ID].StartTime)
}

func TestUpdate_RescheduleOverOwnSlotAllowed(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	repo := newFakeRepo(appt)
	svc := newTestService(repo, &fakeTxManager{})

	// Сдвиг на полчаса пересекается только с собственным интервалом
	resp, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID:    owner,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})

	require.NoError(t, err)
	assert.Equal(t, "10:30", resp.StartTime)
}

func TestUpdate_CancelledAppointmentRejected(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	appt.Status = domain.StatusCancelled
	svc := newTestService(newFakeRepo(appt), &fakeTxManager{})

	_, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID: owner,
		Notes:  ptr.Ptr("too late"),
	})

	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestUpdate_RescheduleToClosedDayRejected(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	svc := newTestService(newFakeRepo(appt), &fakeTxManager{})

	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID: owner,
		Date:   &saturday,
	})

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestUpdate_EmptyChangeSetRejected(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	svc := newTestService(newFakeRepo(appt), &fakeTxManager{})

	_, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID: owner,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_StatusCancelledViaUpdateRejected(t *testing.T) {
	owner := uuid.New()
	appt := scheduledAppointment(owner)
	svc := newTestService(newFakeRepo(appt), &fakeTxManager{})

	_, err := svc.Update(context.Background(), appt.ID, &models.UpdateAppointmentRequest{
		UserID: owner,
		Status: ptr.Ptr("cancelled"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserAppointments_FiltersByStatus(t *testing.T) {
	owner := uuid.New()
	active := scheduledAppointment(owner)
	cancelled := scheduledAppointment(owner)
	cancelled.StartTime = types.TimeString("13:00")
	cancelled.EndTime = types.TimeString("14:00")
	cancelled.Status = domain.StatusCancelled
	svc := newTestService(newFakeRepo(active, cancelled), &fakeTxManager{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: owner,
		Status: ptr.Ptr("scheduled"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, active.ID, resp.Appointments[0].ID)
}
