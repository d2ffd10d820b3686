package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/chatlog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/gemini"
)

// Глубина истории диалога, передаваемой модели как контекст
const historyLimit = 10

// Глубина истории, отдаваемой наружу через API
const historyPageLimit = 50

// Ответ пользователю, когда модель недоступна или вернула ошибку
const fallbackReply = "Sorry, I'm having trouble processing your request right now. Please try again in a moment."

// Service диалоговый ассистент поверх календаря записей
// Держит сессию диалога в Redis, историю сообщений в Postgres
// и выполняет действия над календарем через инструменты модели
type Service struct {
	llm          LLMClient
	sessions     SessionStore
	chatLog      ChatLogRepository
	createUC     CreateAppointmentUseCase
	slotsUC      GetAvailableSlotsUseCase
	apptService  AppointmentService
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр ассистента
func NewService(
	llm LLMClient,
	sessions SessionStore,
	chatLog ChatLogRepository,
	createUC CreateAppointmentUseCase,
	slotsUC GetAvailableSlotsUseCase,
	apptService AppointmentService,
	logger Logger,
) *Service {
	return &Service{
		llm:          llm,
		sessions:     sessions,
		chatLog:      chatLog,
		createUC:     createUC,
		slotsUC:      slotsUC,
		apptService:  apptService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Chat обрабатывает сообщение пользователя и возвращает ответ ассистента
// Ошибки модели не доходят до пользователя как ошибки API: ассистент
// отвечает извинением, а причина остается в логах
func (s *Service) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	s.logger.Info("Chat: message from user=%s", req.UserID)

	// 1. Получаем или создаем сессию диалога
	sessionID, err := s.sessions.GetOrCreate(ctx, req.UserID)
	if err != nil {
		s.logger.Error("Chat: failed to get session for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	// 2. Поднимаем историю диалога
	history, err := s.loadHistory(ctx, sessionID)
	if err != nil {
		s.logger.Error("Chat: failed to load history for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: load history: %v", ErrInternal, err)
	}

	// 3. Ведем диалог с моделью, отдавая ей инструменты календаря
	reply, err := s.llm.Converse(ctx, history, req.Message, s.toolHandler(req.UserID))
	if err != nil {
		s.logger.Error("Chat: conversation failed for user=%s: %v", req.UserID, err)
		reply = fallbackReply
	}

	// 4. Сохраняем обе реплики в историю
	s.appendMessage(ctx, sessionID, req.UserID, chatlog.RoleUser, req.Message)
	s.appendMessage(ctx, sessionID, req.UserID, chatlog.RoleAssistant, reply)

	s.logger.Info("Chat: replied to user=%s in session=%s", req.UserID, sessionID)

	return &ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
	}, nil
}

// History возвращает последние сообщения сессии в хронологическом порядке
// Сообщения выбираются только по владельцу: чужая сессия отдает пустой список
func (s *Service) History(ctx context.Context, req *HistoryRequest) (*HistoryResponse, error) {
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.SessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	messages, err := s.chatLog.GetBySessionAndUser(ctx, req.SessionID, req.UserID, historyPageLimit)
	if err != nil {
		s.logger.Error("History: failed to load history for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: load history: %v", ErrInternal, err)
	}

	result := make([]HistoryMessage, len(messages))
	for i, msg := range messages {
		result[i] = HistoryMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		}
	}

	s.logger.Info("History: returned %d messages for session=%s user=%s",
		len(result), req.SessionID, req.UserID)

	return &HistoryResponse{
		SessionID: req.SessionID,
		Messages:  result,
	}, nil
}

// ResetSession завершает текущую сессию диалога пользователя
func (s *Service) ResetSession(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if err := s.sessions.Clear(ctx, userID); err != nil {
		s.logger.Error("ResetSession: failed to clear session for user=%s: %v", userID, err)
		return fmt.Errorf("%w: clear session: %v", ErrInternal, err)
	}

	s.logger.Info("ResetSession: cleared session for user=%s", userID)
	return nil
}

// loadHistory поднимает последние сообщения сессии в формате модели
func (s *Service) loadHistory(ctx context.Context, sessionID uuid.UUID) ([]gemini.Message, error) {
	messages, err := s.chatLog.GetRecentBySession(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, err
	}

	history := make([]gemini.Message, len(messages))
	for i, msg := range messages {
		role := gemini.RoleUser
		if msg.Role == chatlog.RoleAssistant {
			role = gemini.RoleModel
		}
		history[i] = gemini.Message{Role: role, Text: msg.Content}
	}

	return history, nil
}

// appendMessage сохраняет сообщение в историю
// Ошибка записи не прерывает диалог - пользователь уже получил ответ
func (s *Service) appendMessage(ctx context.Context, sessionID, userID uuid.UUID, role, content string) {
	err := s.chatLog.Append(ctx, &chatlog.Message{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		s.logger.Error("Chat: failed to append %s message to session=%s: %v", role, sessionID, err)
	}
}
