package sqlite

import (
	"context"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
)

type venuesRepo struct {
	db dbtx
}

func (r *venuesRepo) FindVenuesByYelpID(ctx context.Context, yelpID string) ([]domain.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, yelp_id, created_at FROM venues WHERE yelp_id = ? ORDER BY created_at, id`, yelpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var (
			v         domain.Venue
			createdAt int64
		)
		if err := rows.Scan(&v.ID, &v.YelpID, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt = fromMillis(createdAt)
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venuesRepo) InsertVenueIfAbsent(ctx context.Context, v domain.Venue) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (id, yelp_id, created_at) VALUES (?, ?, ?) ON CONFLICT (yelp_id) DO NOTHING`,
		v.ID, v.YelpID, toMillis(v.CreatedAt),
	)
	return err
}

func (r *venuesRepo) CountVenuesByYelpID(ctx context.Context, yelpID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues WHERE yelp_id = ?`, yelpID).Scan(&n)
	return n, err
}
