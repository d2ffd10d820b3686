package get_chat_history

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/assistant"
)

type AssistantService interface {
	History(ctx context.Context, req *assistant.HistoryRequest) (*assistant.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
