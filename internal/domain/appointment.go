package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked time slot in the shared calendar
type Appointment struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Date            time.Time // Календарная дата, всегда совпадает с датой StartTime
	StartTime       types.TimeString
	EndTime         types.TimeString // Всегда StartTime + DurationMinutes
	DurationMinutes int
	ServiceType     string
	Status          AppointmentStatus
	Notes           *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
// Активные записи (scheduled, confirmed) участвуют в проверке пересечений
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeUpdated returns true if the appointment can be updated
// Отмена терминальна: отмененную запись менять нельзя
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// AppointmentChanges явный набор изменяемых полей для операции update
// Неизвестные поля отбрасываются на уровне HTTP модели и сюда не попадают
type AppointmentChanges struct {
	ServiceType     *string
	Notes           *string
	Status          *AppointmentStatus // Только scheduled/confirmed, отмена - через Cancel
	Date            *time.Time
	StartTime       *types.TimeString
	DurationMinutes *int
}

// TouchesTime returns true if the change set moves the appointment in time
// Такие изменения требуют повторной проверки доступности слота
func (c *AppointmentChanges) TouchesTime() bool {
	return c.Date != nil || c.StartTime != nil || c.DurationMinutes != nil
}

// IsEmpty returns true if no recognized field is being changed
func (c *AppointmentChanges) IsEmpty() bool {
	return c.ServiceType == nil && c.Notes == nil && c.Status == nil &&
		c.Date == nil && c.StartTime == nil && c.DurationMinutes == nil
}

// UserAppointmentsFilter фильтр для получения записей пользователя
type UserAppointmentsFilter struct {
	UserID      uuid.UUID
	IncludePast bool       // Включать ли записи с датой раньше сегодняшней
	Today       time.Time  // Граница "прошлого" для IncludePast=false
	Status      *AppointmentStatus
}
