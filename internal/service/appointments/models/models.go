package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID      uuid.UUID `json:"userId"`
	Status      *string   `json:"status,omitempty"`      // Фильтр по статусу (опционально)
	IncludePast bool      `json:"includePast,omitempty"` // Включить прошедшие записи
}

// UpdateAppointmentRequest запрос на изменение записи
// Изменяются только заполненные поля, неизвестные поля отбрасываются при декодировании
type UpdateAppointmentRequest struct {
	UserID          uuid.UUID         `json:"userId"`
	ServiceType     *string           `json:"serviceType,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	Status          *string           `json:"status,omitempty"` // Только scheduled/confirmed, отмена - отдельной операцией
	Date            *time.Time        `json:"date,omitempty"`
	StartTime       *types.TimeString `json:"startTime,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
}

// ToDomainChanges конвертирует request в domain набор изменений
func (r *UpdateAppointmentRequest) ToDomainChanges() (domain.AppointmentChanges, error) {
	changes := domain.AppointmentChanges{
		ServiceType:     r.ServiceType,
		Notes:           r.Notes,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return changes, err
		}
		changes.Status = &status
	}

	return changes, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Date            string    `json:"date"`      // "2024-03-18"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`   // "11:00"
	DurationMinutes int       `json:"durationMinutes"`
	ServiceType     string    `json:"serviceType"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CancelledAt     *string   `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime.String(),
		DurationMinutes: a.DurationMinutes,
		ServiceType:     a.ServiceType,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
// Отмененный статус через update не устанавливается - только через Cancel
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusConfirmed,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainFilterStatus конвертирует строку статуса фильтра, включая cancelled
func ToDomainFilterStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
