package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Create a local account with a username and password. Does not log in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		nightlifesdk.RegisterRequest	true	"credentials"
//	@Success		201		{object}	nightlifesdk.RegisterResponse
//	@Failure		400		{object}	nightlifesdk.ErrorResponse	"missing username or password"
//	@Failure		409		{object}	nightlifesdk.ErrorResponse	"username taken"
//	@Failure		500		{object}	nightlifesdk.ErrorResponse
//	@Router			/api/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nightlifesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.AuthService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeFailure(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			writeFailure(w, http.StatusConflict, "username already taken")
		default:
			slogx.FromContext(ctx).Error("failed to register user", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, nightlifesdk.RegisterResponse{
		Success:  true,
		UserID:   user.ID,
		Username: user.Username,
	})
}
