package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model
// Изменяются только присланные поля, неизвестные поля игнорируются
type UpdateAppointmentRequest struct {
	ServiceType     *string `json:"serviceType,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          *string `json:"status,omitempty"`
	Date            *string `json:"date,omitempty"`      // "2024-03-18"
	StartTime       *string `json:"startTime,omitempty"` // "10:00"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest(userID uuid.UUID) (*models.UpdateAppointmentRequest, error) {
	req := &models.UpdateAppointmentRequest{
		UserID:          userID,
		ServiceType:     r.ServiceType,
		Notes:           r.Notes,
		Status:          r.Status,
		DurationMinutes: r.DurationMinutes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
