package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/jmoiron/sqlx"
)

type venuesRepo struct {
	db dbtx
}

type venueRow struct {
	ID        string    `db:"id"`
	YelpID    string    `db:"yelp_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *venuesRepo) FindVenuesByYelpID(ctx context.Context, yelpID string) ([]domain.Venue, error) {
	var rows []venueRow
	err := sqlx.SelectContext(ctx, r.db, &rows,
		`SELECT id, yelp_id, created_at FROM venues WHERE yelp_id = $1 ORDER BY created_at, id`, yelpID)
	if err != nil {
		return nil, err
	}

	venues := make([]domain.Venue, len(rows))
	for i, row := range rows {
		venues[i] = domain.Venue{ID: row.ID, YelpID: row.YelpID, CreatedAt: row.CreatedAt.UTC()}
	}
	return venues, nil
}

func (r *venuesRepo) InsertVenueIfAbsent(ctx context.Context, v domain.Venue) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (id, yelp_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (yelp_id) DO NOTHING`,
		v.ID, v.YelpID, v.CreatedAt.UTC(),
	)
	return err
}

func (r *venuesRepo) CountVenuesByYelpID(ctx context.Context, yelpID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM venues WHERE yelp_id = $1`, yelpID)
	return n, err
}
