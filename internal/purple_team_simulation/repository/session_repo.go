package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "psim:session:" // psim:session:{session_id}
	userSessionSetPrefix = "psim:user:"    // psim:user:{user_id}:sessions
	eventChannelPrefix   = "psim:events:"  // psim:events:{session_id}
	SessionTTL           = 24 * time.Hour
)

// SessionRepository handles Redis operations for simulation sessions
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client, ttl: SessionTTL}
}

// Create stores a new session and indexes it under its user.
func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	if s.SessionID == "" {
		s.SessionID = uuid.New().String()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := r.userSessionSetKey(s.UserID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.sessionKey(s.SessionID), data, r.ttl)
	pipe.SAdd(ctx, userKey, s.SessionID)
	pipe.Expire(ctx, userKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Update overwrites an existing session and refreshes its TTL.
func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	exists, err := r.client.Exists(ctx, r.sessionKey(s.SessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	s.UpdatedAt = time.Now()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.sessionKey(s.SessionID), data, r.ttl)
	pipe.Expire(ctx, r.userSessionSetKey(s.UserID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// ListByUserID returns the sessions of a user. Index entries whose session
// has expired are pruned.
func (r *SessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Session, error) {
	userKey := r.userSessionSetKey(userID)
	ids, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		s, err := r.GetByID(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if len(stale) > 0 {
		r.client.SRem(ctx, userKey, stale...)
	}
	return sessions, nil
}

// Delete deletes a session
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	s, err := r.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.sessionKey(sessionID))
	pipe.SRem(ctx, r.userSessionSetKey(s.UserID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PublishNotification fans a notice out to every subscriber of the session
// channel, across API instances.
func (r *SessionRepository) PublishNotification(ctx context.Context, sessionID string, n domain.NotificationData) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := r.client.Publish(ctx, r.eventChannel(sessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// SubscribeNotifications subscribes to the session channel. The caller must
// Close the returned PubSub.
func (r *SessionRepository) SubscribeNotifications(ctx context.Context, sessionID string) *redis.PubSub {
	return r.client.Subscribe(ctx, r.eventChannel(sessionID))
}

func (r *SessionRepository) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *SessionRepository) userSessionSetKey(userID string) string {
	return fmt.Sprintf("%s%s:sessions", userSessionSetPrefix, userID)
}

func (r *SessionRepository) eventChannel(sessionID string) string {
	return eventChannelPrefix + sessionID
}
