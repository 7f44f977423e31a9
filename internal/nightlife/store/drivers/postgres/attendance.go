package postgres

import (
	"context"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/jmoiron/sqlx"
)

type attendanceRepo struct {
	db dbtx
}

func (r *attendanceRepo) AddAttendance(ctx context.Context, a domain.Attendance) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users_venues (user_id, venue_id, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, venue_id) DO NOTHING`,
		a.UserID, a.VenueID, a.CreatedAt.UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *attendanceRepo) RemoveAttendance(ctx context.Context, userID, venueID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM users_venues WHERE user_id = $1 AND venue_id = $2`, userID, venueID)
	return err
}

func (r *attendanceRepo) ListAttendingYelpIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := sqlx.SelectContext(ctx, r.db, &ids, `
		SELECT v.yelp_id
		FROM users_venues uv
		JOIN venues v ON v.id = uv.venue_id
		WHERE uv.user_id = $1
		ORDER BY uv.created_at, v.yelp_id`, userID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *attendanceRepo) CountAttendees(ctx context.Context, venueID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM users_venues WHERE venue_id = $1`, venueID)
	return n, err
}
