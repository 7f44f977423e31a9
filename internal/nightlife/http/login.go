package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     *SessionCookies
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Check credentials and open a session. The session is returned as an HttpOnly cookie.
//	@Description	Unknown usernames and wrong passwords get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		nightlifesdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	nightlifesdk.LoginResponse
//	@Failure		400		{object}	nightlifesdk.LoginResponse	"missing username or password"
//	@Failure		401		{object}	nightlifesdk.LoginResponse	"invalid credentials"
//	@Failure		429		{object}	nightlifesdk.ErrorResponse
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nightlifesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, nightlifesdk.LoginResponse{Error: "username and password are required"})
		return
	}

	token, sess, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, nightlifesdk.LoginResponse{Error: "username and password are required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, nightlifesdk.LoginResponse{Error: "invalid username or password"})
		default:
			slogx.FromContext(ctx).Error("failed to log in", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	if err := h.Cookies.Set(w, token, sess); err != nil {
		slogx.FromContext(ctx).Error("failed to sign session cookie", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nightlifesdk.LoginResponse{
		Authenticated: true,
		UserID:        sess.UserID,
		Username:      sess.Username,
	})
}
