package http

import (
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

type CurrentSessionHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Current session
//	@Description	Report whether the caller is logged in and which venues they attend.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	nightlifesdk.SessionResponse
//	@Failure		500	{object}	nightlifesdk.ErrorResponse
//	@Router			/api/current-session [get].
func (h *CurrentSessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, _ := httpx.PrincipalFromContext(ctx)
	view, err := h.AuthService.CurrentSession(ctx, p.Token)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load session", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	ids := view.VenuesAttendingIDs
	if ids == nil {
		ids = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.SessionResponse{
		Authenticated:      view.Authenticated,
		UserID:             view.UserID,
		Username:           view.Username,
		VenuesAttendingIDs: ids,
	})
}
