package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) (*Sessions, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewSessions(client), mr
}

func TestSessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestSessions(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	sess := domain.Session{ID: "abc", UserID: "u1", Username: "alice", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, s.CreateSession(ctx, sess))
	require.ErrorIs(t, s.CreateSession(ctx, sess), store.ErrAlreadyExists)

	got, err := s.GetSession(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, "alice", got.Username)
	require.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	ttl := mr.TTL(keyPrefix + "abc")
	require.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, s.DeleteSession(ctx, "abc"))
	require.NoError(t, s.DeleteSession(ctx, "abc"))
	_, err = s.GetSession(ctx, "abc")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionsExpire(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestSessions(t)

	now := time.Now()
	require.NoError(t, s.CreateSession(ctx, domain.Session{ID: "short", UserID: "u1", ExpiresAt: now.Add(time.Minute), CreatedAt: now}))

	mr.FastForward(2 * time.Minute)
	_, err := s.GetSession(ctx, "short")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("rejects already expired", func(t *testing.T) {
		err := s.CreateSession(ctx, domain.Session{ID: "old", ExpiresAt: now.Add(-time.Second)})
		require.Error(t, err)
	})

	t.Run("stale value past expiry is hidden", func(t *testing.T) {
		require.NoError(t, s.CreateSession(ctx, domain.Session{ID: "clock", UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
		s.now = func() time.Time { return now.Add(2 * time.Hour) }
		t.Cleanup(func() { s.now = time.Now })

		_, err := s.GetSession(ctx, "clock")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	n, err := s.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNewClientFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewClient(ctx, "127.0.0.1:1", "")
	require.Error(t, err)
}

func TestSessionsPing(t *testing.T) {
	s, mr := newTestSessions(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	require.Error(t, s.Ping(context.Background()))
}
