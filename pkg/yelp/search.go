package yelp

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size requested when SearchParams.Limit is unset.
const DefaultLimit = 20

// DefaultSort is the sort order used when none is given.
const DefaultSort = "best_match"

// SearchParams mirrors the query parameters of /v3/businesses/search.
type SearchParams struct {
	Location string
	Price    []int // price levels 1..4, sent as "1,2"
	OpenNow  bool
	SortBy   string
	Offset   int
	Limit    int
}

// Values encodes the params as a query string. Optional fields are omitted
// when unset.
func (p SearchParams) Values() url.Values {
	q := url.Values{}
	q.Set("location", p.Location)

	if len(p.Price) > 0 {
		levels := make([]string, len(p.Price))
		for i, lvl := range p.Price {
			levels[i] = strconv.Itoa(lvl)
		}
		q.Set("price", strings.Join(levels, ","))
	}
	if p.OpenNow {
		q.Set("open_now", "true")
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSort
	}
	q.Set("sort_by", sortBy)

	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	return q
}
