package sqlite

import (
	"context"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
)

type attendanceRepo struct {
	db dbtx
}

func (r *attendanceRepo) AddAttendance(ctx context.Context, a domain.Attendance) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users_venues (user_id, venue_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, venue_id) DO NOTHING`,
		a.UserID, a.VenueID, toMillis(a.CreatedAt),
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
		`DELETE FROM users_venues WHERE user_id = ? AND venue_id = ?`, userID, venueID)
	return err
}

func (r *attendanceRepo) ListAttendingYelpIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.yelp_id
		FROM users_venues uv
		JOIN venues v ON v.id = uv.venue_id
		WHERE uv.user_id = ?
		ORDER BY uv.created_at, v.yelp_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *attendanceRepo) CountAttendees(ctx context.Context, venueID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users_venues WHERE venue_id = ?`, venueID).Scan(&n)
	return n, err
}
