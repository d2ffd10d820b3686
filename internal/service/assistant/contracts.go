package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/chatlog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/gemini"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	slotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// LLMClient интерфейс клиента языковой модели
type LLMClient interface {
	Converse(ctx context.Context, history []gemini.Message, input string, handle gemini.ToolHandler) (string, error)
}

// SessionStore интерфейс хранилища сессий диалогов
type SessionStore interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ChatLogRepository интерфейс репозитория истории сообщений
type ChatLogRepository interface {
	Append(ctx context.Context, msg *chatlog.Message) error
	GetRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*chatlog.Message, error)
	GetBySessionAndUser(ctx context.Context, sessionID, userID uuid.UUID, limit int) ([]*chatlog.Message, error)
}

// CreateAppointmentUseCase интерфейс use case создания записи
type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, req *createUC.Request) (*createUC.Response, error)
}

// GetAvailableSlotsUseCase интерфейс use case получения свободных слотов
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *slotsUC.Request) (*slotsUC.Response, error)
}

// AppointmentService интерфейс сервиса записей
type AppointmentService interface {
	GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
