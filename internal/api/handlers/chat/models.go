package chat

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/assistant"
)

// ChatRequest HTTP request model
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse HTTP response model
type ChatResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Reply     string    `json:"reply"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *assistant.ChatResponse) *ChatResponse {
	return &ChatResponse{
		SessionID: resp.SessionID,
		Reply:     resp.Reply,
	}
}
