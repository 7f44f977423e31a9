package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/cryptox"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

const stateCookieName = "nightlife.oauth_state"

// OAuthHandler runs the redirect half of an identity provider login. The
// provider implementation owns the code exchange.
type OAuthHandler struct {
	Providers   *service.IdentityProviders
	AuthService *service.AuthService
	Cookies     *SessionCookies
	// RedirectURL is where the browser lands after a successful login.
	RedirectURL string
}

// HandleStart godoc
//
//	@Summary		Start provider login
//	@Description	Redirect to the identity provider's consent page.
//	@Tags			Auth
//	@Param			provider	path	string	true	"provider name, e.g. github"
//	@Success		302
//	@Failure		404	{object}	nightlifesdk.ErrorResponse	"provider not enabled"
//	@Router			/api/auth/{provider} [get].
func (h *OAuthHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	provider, err := h.Providers.Get(r.PathValue("provider"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "unknown provider")
		return
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to generate oauth state", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		Finish provider login
//	@Description	Exchange the authorization code, sign in (creating the local user on first login), set the session cookie and redirect.
//	@Tags			Auth
//	@Param			provider	path	string	true	"provider name"
//	@Param			code		query	string	true	"authorization code"
//	@Param			state		query	string	true	"state from the start redirect"
//	@Success		302
//	@Failure		400	{object}	nightlifesdk.ErrorResponse
//	@Failure		401	{object}	nightlifesdk.LoginResponse
//	@Failure		404	{object}	nightlifesdk.ErrorResponse
//	@Router			/api/auth/{provider}/callback [get].
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	provider, err := h.Providers.Get(r.PathValue("provider"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "unknown provider")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	state := r.URL.Query().Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		writeFailure(w, http.StatusBadRequest, "invalid state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/api/auth/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeFailure(w, http.StatusBadRequest, "code is required")
		return
	}

	ident, err := provider.Exchange(ctx, code)
	if err != nil {
		log.Warn("identity provider exchange failed", "provider", provider.Name(), "err", err)
		httpx.WriteJSON(w, http.StatusUnauthorized, nightlifesdk.LoginResponse{Error: "login failed"})
		return
	}
	ident.Provider = provider.Name()

	token, sess, err := h.AuthService.LoginWithIdentity(ctx, ident)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpx.WriteJSON(w, http.StatusUnauthorized, nightlifesdk.LoginResponse{Error: "login failed"})
			return
		}
		log.Error("failed to sign in external identity", "provider", provider.Name(), "err", err)
		httpx.WriteInternalError(w)
		return
	}

	if err := h.Cookies.Set(w, token, sess); err != nil {
		log.Error("failed to sign session cookie", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	redirect := h.RedirectURL
	if redirect == "" {
		redirect = "/"
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}
