package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitecue/sitecue/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SaveSession stores a refresh session. The Redis TTL mirrors the session
// expiry so orphaned records disappear on their own.
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := s.client.Set(ctx, SessionKey(session.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.client.SAdd(ctx, AllSessionsKey(), session.Token).Err(); err != nil {
		return fmt.Errorf("failed to add session to set: %w", err)
	}

	return nil
}

// GetSession retrieves a refresh session by token
func (s *Store) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, SessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a refresh session
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, SessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.client.SRem(ctx, AllSessionsKey(), token).Err(); err != nil {
		return fmt.Errorf("failed to remove session from set: %w", err)
	}
	return nil
}

// ListSessions retrieves all live refresh sessions. Tokens whose records
// have expired out of Redis are pruned from the index set as a side effect.
func (s *Store) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	tokens, err := s.client.SMembers(ctx, AllSessionsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session tokens: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(tokens))
	for _, token := range tokens {
		session, err := s.GetSession(ctx, token)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				s.client.SRem(ctx, AllSessionsKey(), token)
			}
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// ExtendSession pushes a session's expiry out by ttl from now and updates
// the Redis TTL to match.
func (s *Store) ExtendSession(ctx context.Context, token string, ttl time.Duration) error {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(ttl)
	return s.SaveSession(ctx, session)
}
