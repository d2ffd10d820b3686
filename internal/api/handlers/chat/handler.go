package chat

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/assistant"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgEmptyMessage       = "message must not be empty"
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

// Handle POST /api/v1/chat
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /chat - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chat - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Chat(r.Context(), &assistant.ChatRequest{
		UserID:  userID,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrInvalidInput):
			h.logger.Warn("POST /chat - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgEmptyMessage)

		default:
			h.logger.Error("POST /chat - Failed to process message: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chat - Message processed successfully: user_id=%s, session_id=%s",
		userID, result.SessionID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// HandleReset DELETE /api/v1/chat/session
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /chat/session - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.ResetSession(r.Context(), userID); err != nil {
		h.logger.Error("DELETE /chat/session - Failed to reset session: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /chat/session - Session reset successfully: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
