package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/sqlite"
	"github.com/aussiebroadwan/nightlife/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "nightlife.db"), sqlite.DefaultMaxConns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Username: username, PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestMemoryStore(t *testing.T) {
	s, err := sqlite.NewStore(":memory:", 5)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ApplyMigrations())
	createUser(t, s, "alice")
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice")

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, alice.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())

	got, err = s.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("duplicate username", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "alice", CreatedAt: time.Now()})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("external identity", func(t *testing.T) {
		_, err := s.Users().GetUserByExternalIdentity(ctx, "github", "42")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.Users().LinkExternalIdentity(ctx, "github", "42", alice.ID))
		require.ErrorIs(t, s.Users().LinkExternalIdentity(ctx, "github", "42", alice.ID), store.ErrAlreadyExists)

		u, err := s.Users().GetUserByExternalIdentity(ctx, "github", "42")
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
	})
}

func TestVenuesInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	venues, err := s.Venues().FindVenuesByYelpID(ctx, "abc123")
	require.NoError(t, err)
	require.Empty(t, venues)

	first := domain.Venue{ID: idx.New().String(), YelpID: "abc123", CreatedAt: time.Now()}
	require.NoError(t, s.Venues().InsertVenueIfAbsent(ctx, first))
	require.NoError(t, s.Venues().InsertVenueIfAbsent(ctx, domain.Venue{ID: idx.New().String(), YelpID: "abc123", CreatedAt: time.Now()}))

	venues, err = s.Venues().FindVenuesByYelpID(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	require.Equal(t, first.ID, venues[0].ID)

	n, err := s.Venues().CountVenuesByYelpID(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestAttendance(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	v1 := domain.Venue{ID: idx.New().String(), YelpID: "v1", CreatedAt: time.Now()}
	v2 := domain.Venue{ID: idx.New().String(), YelpID: "v2", CreatedAt: time.Now()}
	require.NoError(t, s.Venues().InsertVenueIfAbsent(ctx, v1))
	require.NoError(t, s.Venues().InsertVenueIfAbsent(ctx, v2))

	now := time.Now()
	created, err := s.Attendance().AddAttendance(ctx, domain.Attendance{UserID: alice.ID, VenueID: v1.ID, CreatedAt: now})
	require.NoError(t, err)
	require.True(t, created)

	created, err = s.Attendance().AddAttendance(ctx, domain.Attendance{UserID: alice.ID, VenueID: v1.ID, CreatedAt: now})
	require.NoError(t, err)
	require.False(t, created, "duplicate link must be a no-op")

	_, err = s.Attendance().AddAttendance(ctx, domain.Attendance{UserID: alice.ID, VenueID: v2.ID, CreatedAt: now.Add(time.Second)})
	require.NoError(t, err)
	_, err = s.Attendance().AddAttendance(ctx, domain.Attendance{UserID: bob.ID, VenueID: v1.ID, CreatedAt: now})
	require.NoError(t, err)

	ids, err := s.Attendance().ListAttendingYelpIDs(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"v1", "v2"}, ids)

	count, err := s.Attendance().CountAttendees(ctx, v1.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, s.Attendance().RemoveAttendance(ctx, alice.ID, v1.ID))
	require.NoError(t, s.Attendance().RemoveAttendance(ctx, alice.ID, v1.ID))

	ids, err = s.Attendance().ListAttendingYelpIDs(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"v2"}, ids)

	ids, err = s.Attendance().ListAttendingYelpIDs(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, ids)
	require.Empty(t, ids)

	t.Run("foreign keys enforced", func(t *testing.T) {
		_, err := s.Attendance().AddAttendance(ctx, domain.Attendance{UserID: "ghost", VenueID: v1.ID, CreatedAt: now})
		require.Error(t, err)
	})
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")

	now := time.Now()
	live := domain.Session{ID: "live", UserID: alice.ID, Username: "alice", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	stale := domain.Session{ID: "stale", UserID: alice.ID, Username: "alice", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, stale))

	got, err := s.Sessions().GetSession(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.UserID)
	require.Equal(t, live.ExpiresAt.UnixMilli(), got.ExpiresAt.UnixMilli())

	_, err = s.Sessions().GetSession(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, s.Sessions().DeleteSession(ctx, "live"))
	require.NoError(t, s.Sessions().DeleteSession(ctx, "live"))
	_, err = s.Sessions().GetSession(ctx, "live")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Venues().InsertVenueIfAbsent(ctx, domain.Venue{ID: idx.New().String(), YelpID: "gone", CreatedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Venues().CountVenuesByYelpID(ctx, "gone")
	require.NoError(t, err)
	require.Zero(t, n)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err, "nested transactions are not supported")
}

func TestConcurrentInsertIfAbsentLeavesOneRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.WithTx(ctx, func(tx store.Tx) error {
				found, err := tx.Venues().FindVenuesByYelpID(ctx, "hot")
				if err != nil || len(found) > 0 {
					return err
				}
				return tx.Venues().InsertVenueIfAbsent(ctx, domain.Venue{ID: idx.New().String(), YelpID: "hot", CreatedAt: time.Now()})
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	n, err := s.Venues().CountVenuesByYelpID(ctx, "hot")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
