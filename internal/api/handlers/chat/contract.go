package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/assistant"
)

type AssistantService interface {
	Chat(ctx context.Context, req *assistant.ChatRequest) (*assistant.ChatResponse, error)
	ResetSession(ctx context.Context, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
