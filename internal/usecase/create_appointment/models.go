package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID          uuid.UUID        // Владелец записи
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала слота, например "10:00"
	DurationMinutes int              // 0 означает длительность по умолчанию (60 минут)
	ServiceType     string           // Пустая строка означает тип по умолчанию
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	ServiceType     string
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
