package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// DirectoryHandler proxies to the business directory. Successful bodies are
// written through unchanged.
type DirectoryHandler struct {
	DirectoryService *service.DirectoryService
}

// searchBody mirrors nightlifesdk.SearchRequest but tolerates the price tier
// arriving as a string.
type searchBody struct {
	Price   priceTier `json:"price"`
	OpenNow bool      `json:"openNow"`
	SortBy  string    `json:"sortBy"`
	Offset  int       `json:"offset"`
}

// priceTier decodes a number or numeric string. Anything else decodes as 0,
// which requests every price level.
type priceTier int

func (p *priceTier) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if json.Unmarshal(b, &s) == nil {
			n = json.Number(strings.TrimSpace(s))
		}
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		*p = 0
		return nil
	}
	*p = priceTier(v)
	return nil
}

// HandleSearch godoc
//
//	@Summary		Search venues
//	@Description	Search the business directory around a location. The directory's JSON is returned unchanged.
//	@Description	price is the maximum price tier: 2 searches levels 1 and 2, while 4 or no value searches all levels.
//	@Tags			Directory
//	@Accept			json
//	@Produce		json
//	@Param			location	path		string						true	"free-text location"
//	@Param			body		body		nightlifesdk.SearchRequest	false	"optional filters"
//	@Success		200			{object}	object						"directory search response"
//	@Failure		400			{object}	nightlifesdk.ErrorResponse
//	@Failure		404			{object}	map[string]string	"location_not_found"
//	@Failure		500			{object}	nightlifesdk.ErrorResponse
//	@Router			/api/yelp-data/{location} [post].
func (h *DirectoryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body searchBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	raw, err := h.DirectoryService.Search(ctx, service.SearchRequest{
		Location:  r.PathValue("location"),
		PriceTier: int(body.Price),
		OpenNow:   body.OpenNow,
		SortBy:    body.SortBy,
		Offset:    body.Offset,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeFailure(w, http.StatusBadRequest, "location is required")
		case errors.Is(err, service.ErrLocationNotFound):
			writeErrorCode(w, http.StatusNotFound, nightlifesdk.ErrorLocationNotFound)
		default:
			slogx.FromContext(ctx).Error("directory search failed", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	httpx.WriteRawJSON(w, http.StatusOK, raw)
}

// HandleBusiness godoc
//
//	@Summary		Venue details
//	@Description	Look up one business in the directory. The directory's JSON is returned unchanged.
//	@Tags			Directory
//	@Produce		json
//	@Param			venueYelpId	path		string				true	"directory business id"
//	@Success		200			{object}	object				"directory business"
//	@Failure		400			{object}	nightlifesdk.ErrorResponse
//	@Failure		404			{object}	map[string]string	"venue_not_found"
//	@Failure		500			{object}	nightlifesdk.ErrorResponse
//	@Router			/api/get-venues-attending/{venueYelpId} [get].
func (h *DirectoryHandler) HandleBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := h.DirectoryService.Business(ctx, r.PathValue("venueYelpId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeFailure(w, http.StatusBadRequest, "venueYelpId is required")
		case errors.Is(err, service.ErrVenueNotFound):
			writeErrorCode(w, http.StatusNotFound, nightlifesdk.ErrorVenueNotFound)
		default:
			slogx.FromContext(ctx).Error("directory lookup failed", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	httpx.WriteRawJSON(w, http.StatusOK, raw)
}
