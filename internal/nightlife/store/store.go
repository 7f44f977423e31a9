package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrIntegrity means a uniqueness invariant the schema should enforce
	// has been observed broken.
	ErrIntegrity = errors.New("store: integrity violation")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx-scoped
// store hands out repos bound to the same transaction.
type Store interface {
	Users() Users
	Venues() Venues
	Attendance() Attendance
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByExternalIdentity resolves a provider subject to its linked user.
	GetUserByExternalIdentity(ctx context.Context, provider, subject string) (domain.User, error)

	// LinkExternalIdentity records that provider/subject belongs to userID.
	LinkExternalIdentity(ctx context.Context, provider, subject, userID string) error
}

type Venues interface {
	// FindVenuesByYelpID returns every row for yelpID so duplicates are visible
	// to callers. An empty slice means no venue exists yet.
	FindVenuesByYelpID(ctx context.Context, yelpID string) ([]domain.Venue, error)

	// InsertVenueIfAbsent inserts v unless a row with the same yelp id already
	// exists, in which case it does nothing and returns nil.
	InsertVenueIfAbsent(ctx context.Context, v domain.Venue) error

	CountVenuesByYelpID(ctx context.Context, yelpID string) (int, error)
}

type Attendance interface {
	// AddAttendance links user and venue. created is false when the link
	// already existed.
	AddAttendance(ctx context.Context, a domain.Attendance) (created bool, err error)

	// RemoveAttendance deletes the link; a missing link is not an error.
	RemoveAttendance(ctx context.Context, userID, venueID string) error

	// ListAttendingYelpIDs returns the yelp ids of every venue userID attends,
	// oldest first.
	ListAttendingYelpIDs(ctx context.Context, userID string) ([]string, error)

	CountAttendees(ctx context.Context, venueID string) (int, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns the session with id only if it has not expired.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession removes a session; a missing session is not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions that expired before now and
	// reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
