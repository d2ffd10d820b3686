package get_chat_history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/assistant"
)

const (
	msgInvalidSessionID = "invalid session ID"
	msgMissingUserID    = "missing user ID"
	msgInvalidRequest   = "invalid request"
)

type Handler struct {
	service AssistantService
	logger  Logger
}

func NewHandler(service AssistantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chat/history/{sessionId}
// История выбирается только по владельцу: чужая сессия отдает пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("GET /chat/history/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /chat/history/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	history, err := h.service.History(r.Context(), &assistant.HistoryRequest{
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrInvalidInput):
			h.logger.Warn("GET /chat/history/{id} - Invalid request: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /chat/history/{id} - Failed to get history: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /chat/history/{id} - History retrieved successfully: session_id=%s, user_id=%s, messages=%d",
		sessionID, userID, len(history.Messages))
	handlers.RespondJSON(w, http.StatusOK, history)
}
