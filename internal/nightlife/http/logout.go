package http

import (
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
	Cookies     *SessionCookies
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Destroy the caller's session and clear the cookie. Succeeds without a session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	nightlifesdk.SuccessResponse
//	@Failure		500	{object}	nightlifesdk.ErrorResponse
//	@Router			/api/logout [get].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.AuthService.Logout(ctx, h.Cookies.Token(r)); err != nil {
		slogx.FromContext(ctx).Error("failed to destroy session", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	h.Cookies.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.SuccessResponse{Success: true})
}
