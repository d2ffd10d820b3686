// Package chatlog хранилище истории диалогов с ассистентом
package chatlog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Роли сообщений в диалоге
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message сообщение диалога
type Message struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	UserID    uuid.UUID
	Role      string // user | assistant
	Content   string
	CreatedAt time.Time
}

// Repository репозиторий истории сообщений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append сохраняет сообщение диалога
func (r *Repository) Append(ctx context.Context, msg *Message) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("chat_messages").
		Columns("id", "session_id", "user_id", "role", "content").
		Values(msg.ID, msg.SessionID, msg.UserID, msg.Role, msg.Content).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&msg.CreatedAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetRecentBySession возвращает последние limit сообщений сессии
// в хронологическом порядке (старые первыми) - готово для контекста LLM
func (r *Repository) GetRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*Message, error) {
	return r.selectRecent(ctx, "GetRecentBySession", squirrel.Eq{"session_id": sessionID}, limit)
}

// GetBySessionAndUser возвращает последние limit сообщений сессии,
// принадлежащих пользователю, в хронологическом порядке
// Чужая сессия отдает пустой список - сообщения других пользователей не читаются
func (r *Repository) GetBySessionAndUser(ctx context.Context, sessionID, userID uuid.UUID, limit int) ([]*Message, error) {
	return r.selectRecent(ctx, "GetBySessionAndUser", squirrel.Eq{"session_id": sessionID, "user_id": userID}, limit)
}

func (r *Repository) selectRecent(ctx context.Context, op string, where squirrel.Eq, limit int) ([]*Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Берем последние limit по created_at DESC, затем разворачиваем
	// seq добивает порядок для пары сообщений с одинаковым created_at
	query, args, err := psqlbuilder.Select("id", "session_id", "user_id", "role", "content", "created_at").
		From("chat_messages").
		Where(where).
		OrderBy("created_at DESC", "seq DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	messages := make([]*Message, 0)
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	// Разворачиваем в хронологический порядок
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
