// Package session хранилище активных чат-сессий в Redis
// Сессия живет sessionTTL с момента последнего сообщения; по истечении
// пользователь получает новую сессию, и ассистент начинает диалог заново
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "assistant:session:"

// ErrInternal возвращается при ошибках Redis
var ErrInternal = errors.New("session.store: internal error")

// Store хранилище соответствия пользователь -> активная сессия
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище сессий с указанным TTL
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// GetOrCreate возвращает активную сессию пользователя, создавая новую при отсутствии
// Каждое обращение продлевает TTL сессии
func (s *Store) GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	key := sessionKeyPrefix + userID.String()

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		sessionID := uuid.New()
		if err := s.client.Set(ctx, key, sessionID.String(), s.ttl).Err(); err != nil {
			return uuid.Nil, fmt.Errorf("%w: set session: %v", ErrInternal, err)
		}
		return sessionID, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	sessionID, err := uuid.Parse(val)
	if err != nil {
		// Поврежденное значение - заводим новую сессию
		sessionID = uuid.New()
	}

	if err := s.client.Set(ctx, key, sessionID.String(), s.ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: refresh session ttl: %v", ErrInternal, err)
	}

	return sessionID, nil
}

// Clear завершает активную сессию пользователя
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+userID.String()).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", ErrInternal, err)
	}
	return nil
}
