package assistant

import "github.com/google/uuid"

// ChatRequest запрос с сообщением пользователя
type ChatRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Message string    `json:"message"`
}

// ChatResponse ответ ассистента
type ChatResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Reply     string    `json:"reply"`
}

// HistoryRequest запрос истории сообщений сессии
type HistoryRequest struct {
	UserID    uuid.UUID `json:"userId"`
	SessionID uuid.UUID `json:"sessionId"`
}

// HistoryMessage сообщение истории диалога
type HistoryMessage struct {
	Role      string `json:"role"` // user | assistant
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"` // ISO 8601 format
}

// HistoryResponse ответ с историей сообщений сессии
type HistoryResponse struct {
	SessionID uuid.UUID        `json:"sessionId"`
	Messages  []HistoryMessage `json:"messages"`
}
