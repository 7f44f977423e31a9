package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/nightlife/pkg/metrics"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
	"github.com/aussiebroadwan/nightlife/pkg/yelp"
	"github.com/tidwall/gjson"
)

// Directory is the business directory the proxy forwards to.
type Directory interface {
	Search(ctx context.Context, p yelp.SearchParams) ([]byte, error)
	Business(ctx context.Context, id string) ([]byte, error)
}

// SearchRequest carries the filters a client may set on a search. Zero
// values mean "not set".
type SearchRequest struct {
	Location  string
	PriceTier int
	OpenNow   bool
	SortBy    string
	Offset    int
}

var sortKeys = map[string]struct{}{
	"best_match":   {},
	"rating":       {},
	"review_count": {},
	"distance":     {},
}

// PriceLevels expands a maximum price tier into the cumulative set of
// levels to request: tier n in 1..3 asks for 1..n, anything else for all four.
func PriceLevels(tier int) []int {
	if tier < 1 || tier > 3 {
		return []int{1, 2, 3, 4}
	}
	levels := make([]int, tier)
	for i := range levels {
		levels[i] = i + 1
	}
	return levels
}

// SortKey returns key when the directory understands it, else best_match.
func SortKey(key string) string {
	key = strings.TrimSpace(key)
	if _, ok := sortKeys[key]; ok {
		return key
	}
	return yelp.DefaultSort
}

// DirectoryService proxies searches and lookups. Bodies are passed through
// unmodified; there is no caching and no retrying.
type DirectoryService struct {
	Client Directory
}

func (s *DirectoryService) Search(ctx context.Context, req SearchRequest) ([]byte, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, ErrInvalidInput
	}

	offset := max(req.Offset, 0)
	params := yelp.SearchParams{
		Location: location,
		Price:    PriceLevels(req.PriceTier),
		OpenNow:  req.OpenNow,
		SortBy:   SortKey(req.SortBy),
		Offset:   offset,
		Limit:    yelp.DefaultLimit,
	}

	start := time.Now()
	body, err := s.Client.Search(ctx, params)
	if err != nil {
		return nil, s.mapError(ctx, "search", err, start, http.StatusBadRequest, ErrLocationNotFound)
	}
	metrics.RecordDirectoryCall("search", "ok", time.Since(start))

	slogx.FromContext(ctx).Debug("directory search",
		slog.String("location", location),
		slog.Int64("total", gjson.GetBytes(body, "total").Int()),
		slog.Int("returned", len(gjson.GetBytes(body, "businesses").Array())),
	)
	return body, nil
}

func (s *DirectoryService) Business(ctx context.Context, yelpID string) ([]byte, error) {
	yelpID = strings.TrimSpace(yelpID)
	if yelpID == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()
	body, err := s.Client.Business(ctx, yelpID)
	if err != nil {
		// the directory answers an unknown id with 404, a malformed one with 400
		if yelp.StatusOf(err) == http.StatusBadRequest {
			return nil, s.mapError(ctx, "business", err, start, http.StatusBadRequest, ErrVenueNotFound)
		}
		return nil, s.mapError(ctx, "business", err, start, http.StatusNotFound, ErrVenueNotFound)
	}
	metrics.RecordDirectoryCall("business", "ok", time.Since(start))

	slogx.FromContext(ctx).Debug("directory lookup",
		slog.String("yelp_id", yelpID),
		slog.String("name", gjson.GetBytes(body, "name").String()),
	)
	return body, nil
}

// mapError turns a directory failure into notFound when the directory
// answered with notFoundStatus and ErrDirectoryUnavailable otherwise. The
// underlying detail is logged here and never returned to clients.
func (s *DirectoryService) mapError(ctx context.Context, op string, err error, start time.Time, notFoundStatus int, notFound error) error {
	status := yelp.StatusOf(err)
	l := slogx.FromContext(ctx)

	if status == notFoundStatus {
		metrics.RecordDirectoryCall(op, "not_found", time.Since(start))
		l.Info("directory reported not found", slog.String("op", op), slog.Any("err", err))
		return notFound
	}

	outcome := "error"
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		outcome = "timeout"
	}
	metrics.RecordDirectoryCall(op, outcome, time.Since(start))
	l.Error("directory call failed", slog.String("op", op), slog.Int("status", status), slog.Any("err", err))
	return fmt.Errorf("%w: %s", ErrDirectoryUnavailable, op)
}
