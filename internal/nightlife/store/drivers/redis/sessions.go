// Package redis keeps sessions in Redis. It implements store.Sessions only;
// users, venues and attendance always live in the SQL store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// Sessions stores each session as JSON under session:<id> with a TTL equal
// to its remaining lifetime.
type Sessions struct {
	client *redis.Client
	now    func() time.Time
}

var _ store.Sessions = (*Sessions)(nil)

// NewClient connects to addr and verifies the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client, now: time.Now}
}

type sessionValue struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Sessions) CreateSession(ctx context.Context, sess domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("redis: session %s already expired", sess.ID)
	}

	raw, err := json.Marshal(sessionValue{
		UserID:    sess.UserID,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt.UTC(),
		CreatedAt: sess.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, keyPrefix+sess.ID, raw, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Sessions) GetSession(ctx context.Context, id string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	var v sessionValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Session{}, fmt.Errorf("redis: decode session: %w", err)
	}

	sess := domain.Session{
		ID:        id,
		UserID:    v.UserID,
		Username:  v.Username,
		ExpiresAt: v.ExpiresAt,
		CreatedAt: v.CreatedAt,
	}
	if sess.Expired(s.now()) {
		return domain.Session{}, store.ErrNotFound
	}
	return sess, nil
}

func (s *Sessions) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// DeleteExpiredSessions is a no-op: Redis evicts sessions when their TTL lapses.
func (s *Sessions) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// Ping checks the Redis connection.
func (s *Sessions) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Sessions) Close() error {
	return s.client.Close()
}
