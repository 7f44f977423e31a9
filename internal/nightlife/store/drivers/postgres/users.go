package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/jmoiron/sqlx"
)

type usersRepo struct {
	db dbtx
}

type userRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) domain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func (r *usersRepo) get(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC(),
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username)
}

func (r *usersRepo) GetUserByExternalIdentity(ctx context.Context, provider, subject string) (domain.User, error) {
	return r.get(ctx, `
		SELECT u.id, u.username, u.password_hash, u.created_at
		FROM user_identities ui
		JOIN users u ON u.id = ui.user_id
		WHERE ui.provider = $1 AND ui.subject = $2`,
		provider, subject,
	)
}

func (r *usersRepo) LinkExternalIdentity(ctx context.Context, provider, subject, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_identities (provider, subject, user_id) VALUES ($1, $2, $3)`,
		provider, subject, userID,
	)
	return mapConflict(err)
}
