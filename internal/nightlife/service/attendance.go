package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/pkg/idx"
	"github.com/aussiebroadwan/nightlife/pkg/metrics"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// AttendanceResult describes the outcome of Add.
type AttendanceResult struct {
	VenueID string
	// Created is false when the user was already attending.
	Created bool
}

// AttendanceCount is the number of users attending a venue. VenueID is empty
// when nobody has ever attended it.
type AttendanceCount struct {
	VenueID string
	Count   int
}

type AttendanceService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *AttendanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add marks userID as attending the directory business yelpID. The venue row
// is looked up or created and the link inserted in one transaction, so a
// failure leaves no speculatively created venue behind.
func (s *AttendanceService) Add(ctx context.Context, userID, yelpID string) (res AttendanceResult, err error) {
	defer func() { metrics.RecordAttendance("add", err) }()

	userID, yelpID = strings.TrimSpace(userID), strings.TrimSpace(yelpID)
	if userID == "" || yelpID == "" {
		return AttendanceResult{}, ErrInvalidInput
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		venue, err := s.resolveVenue(ctx, tx, yelpID)
		if err != nil {
			return err
		}

		created, err := tx.Attendance().AddAttendance(ctx, domain.Attendance{
			UserID:    userID,
			VenueID:   venue.ID,
			CreatedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("add attendance: %w", err)
		}

		res = AttendanceResult{VenueID: venue.ID, Created: created}
		return nil
	})
	if err != nil {
		return AttendanceResult{}, err
	}

	slogx.FromContext(ctx).Info("attendance added",
		slog.String("user_id", userID),
		slog.String("yelp_id", yelpID),
		slog.String("venue_id", res.VenueID),
		slog.Bool("created", res.Created),
	)
	return res, nil
}

// resolveVenue returns the single venue row for yelpID, inserting it first
// if needed. A concurrent insert of the same id is absorbed by the
// insert-if-absent and the re-read picks up the winner's row.
func (s *AttendanceService) resolveVenue(ctx context.Context, tx store.Tx, yelpID string) (domain.Venue, error) {
	venues, err := tx.Venues().FindVenuesByYelpID(ctx, yelpID)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("find venue: %w", err)
	}

	if len(venues) == 0 {
		err := tx.Venues().InsertVenueIfAbsent(ctx, domain.Venue{
			ID:        idx.New().String(),
			YelpID:    yelpID,
			CreatedAt: s.now(),
		})
		if err != nil {
			return domain.Venue{}, fmt.Errorf("insert venue: %w", err)
		}

		venues, err = tx.Venues().FindVenuesByYelpID(ctx, yelpID)
		if err != nil {
			return domain.Venue{}, fmt.Errorf("find venue: %w", err)
		}
	}

	if len(venues) != 1 {
		slogx.FromContext(ctx).Error("venue uniqueness violated",
			slog.String("yelp_id", yelpID),
			slog.Int("rows", len(venues)),
		)
		return domain.Venue{}, fmt.Errorf("%w: %d venue rows for %q", ErrDataIntegrity, len(venues), yelpID)
	}
	return venues[0], nil
}

// Remove unlinks userID from yelpID. Removing a venue that was never
// attended, or that does not exist locally, succeeds without change.
func (s *AttendanceService) Remove(ctx context.Context, userID, yelpID string) (err error) {
	defer func() { metrics.RecordAttendance("remove", err) }()

	userID, yelpID = strings.TrimSpace(userID), strings.TrimSpace(yelpID)
	if userID == "" || yelpID == "" {
		return ErrInvalidInput
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		venues, err := tx.Venues().FindVenuesByYelpID(ctx, yelpID)
		if err != nil {
			return fmt.Errorf("find venue: %w", err)
		}
		if len(venues) == 0 {
			return nil
		}
		for _, v := range venues {
			if err := tx.Attendance().RemoveAttendance(ctx, userID, v.ID); err != nil {
				return fmt.Errorf("remove attendance: %w", err)
			}
		}
		slogx.FromContext(ctx).Info("attendance removed",
			slog.String("user_id", userID),
			slog.String("yelp_id", yelpID),
		)
		return nil
	})
}

// CountAttending reports how many users attend yelpID.
func (s *AttendanceService) CountAttending(ctx context.Context, yelpID string) (AttendanceCount, error) {
	yelpID = strings.TrimSpace(yelpID)
	if yelpID == "" {
		return AttendanceCount{}, ErrInvalidInput
	}

	venues, err := s.Store.Venues().FindVenuesByYelpID(ctx, yelpID)
	if err != nil {
		return AttendanceCount{}, fmt.Errorf("find venue: %w", err)
	}
	switch len(venues) {
	case 0:
		return AttendanceCount{}, nil
	case 1:
	default:
		return AttendanceCount{}, fmt.Errorf("%w: %d venue rows for %q", ErrDataIntegrity, len(venues), yelpID)
	}

	n, err := s.Store.Attendance().CountAttendees(ctx, venues[0].ID)
	if err != nil {
		return AttendanceCount{}, fmt.Errorf("count attendees: %w", err)
	}
	return AttendanceCount{VenueID: venues[0].ID, Count: n}, nil
}

// ListAttending returns the yelp ids userID attends.
func (s *AttendanceService) ListAttending(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	ids, err := s.Store.Attendance().ListAttendingYelpIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attending: %w", err)
	}
	return ids, nil
}
