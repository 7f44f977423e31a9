package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/jmoiron/sqlx"
)

type sessionsRepo struct {
	db dbtx
}

type sessionRow struct {
	ID        string    `db:"sid"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session (sid, user_id, username, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.Username, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	var row sessionRow
	err := sqlx.GetContext(ctx, r.db, &row,
		`SELECT sid, user_id, username, expires_at, created_at FROM session WHERE sid = $1 AND expires_at > now()`, id)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.Username,
		ExpiresAt: row.ExpiresAt.UTC(),
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE sid = $1`, id)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
