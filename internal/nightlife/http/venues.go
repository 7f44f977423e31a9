package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// VenuesHandler serves the attendance routes. All of them require a session.
type VenuesHandler struct {
	AttendanceService *service.AttendanceService
}

// HandleAdd godoc
//
//	@Summary		Attend a venue
//	@Description	Mark the logged-in user as attending a directory business. The local venue row is created on first use.
//	@Description	Attending twice is not an error.
//	@Tags			Venues
//	@Accept			json
//	@Produce		json
//	@Param			body	body		nightlifesdk.AttendRequest	true	"venue"
//	@Success		200		{object}	nightlifesdk.MessageResponse
//	@Failure		400		{object}	nightlifesdk.ErrorResponse
//	@Failure		401		{object}	nightlifesdk.LoginResponse	"not logged in"
//	@Failure		403		{object}	nightlifesdk.ErrorResponse	"userId does not match the session"
//	@Failure		500		{object}	nightlifesdk.ErrorResponse
//	@Router			/api/venues-attending [post].
func (h *VenuesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.AttendanceService.Add(ctx, p.UserID, req.VenueYelpID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	msg := "venue added"
	if !res.Created {
		msg = "already attending venue"
	}
	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.MessageResponse{Success: true, Message: msg})
}

// HandleRemove godoc
//
//	@Summary		Stop attending a venue
//	@Description	Remove the logged-in user from a venue. Unknown venues succeed without change.
//	@Tags			Venues
//	@Accept			json
//	@Produce		json
//	@Param			body	body		nightlifesdk.AttendRequest	true	"venue"
//	@Success		200		{object}	nightlifesdk.MessageResponse
//	@Failure		400		{object}	nightlifesdk.ErrorResponse
//	@Failure		401		{object}	nightlifesdk.LoginResponse	"not logged in"
//	@Failure		500		{object}	nightlifesdk.ErrorResponse
//	@Router			/api/venue-remove [post].
func (h *VenuesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.AttendanceService.Remove(ctx, p.UserID, req.VenueYelpID); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.MessageResponse{Success: true, Message: "venue removed"})
}

// HandleCount godoc
//
//	@Summary		Count attendees
//	@Description	Number of users attending a directory business. venueId is empty when nobody ever has.
//	@Tags			Venues
//	@Produce		json
//	@Param			yelpId	path		string	true	"directory business id"
//	@Success		200		{object}	nightlifesdk.CountResponse
//	@Failure		401		{object}	nightlifesdk.LoginResponse	"not logged in"
//	@Failure		500		{object}	nightlifesdk.ErrorResponse
//	@Router			/api/number-attending/{yelpId} [get].
func (h *VenuesHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	yelpID := r.PathValue("yelpId")

	count, err := h.AttendanceService.CountAttending(r.Context(), yelpID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.CountResponse{
		Success: true,
		YelpID:  yelpID,
		VenueID: count.VenueID,
		Count:   count.Count,
	})
}

// decode reads the attend body and checks an explicit userId against the
// session. It writes the failure response itself.
func (h *VenuesHandler) decode(w http.ResponseWriter, r *http.Request) (httpx.Principal, nightlifesdk.AttendRequest, bool) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req nightlifesdk.AttendRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "venueYelpId is required")
		return p, req, false
	}
	if req.UserID != "" && req.UserID != p.UserID {
		slogx.FromContext(r.Context()).Warn("attendance request for another user", "body_user_id", req.UserID)
		writeFailure(w, http.StatusForbidden, "forbidden")
		return p, req, false
	}
	return p, req, true
}

func (h *VenuesHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeFailure(w, http.StatusBadRequest, "venueYelpId is required")
	default:
		slogx.FromContext(r.Context()).Error("attendance operation failed", "err", err)
		httpx.WriteInternalError(w)
	}
}
