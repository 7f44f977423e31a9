package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/jwtx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// SessionCookies issues and reads the signed session cookie. The cookie
// carries the raw session token inside an HS256 JWT; the server only keeps
// the token's fingerprint.
type SessionCookies struct {
	Signer *jwtx.CookieSigner
	Auth   *service.AuthService
	Issuer string
	// Secure marks the cookie HTTPS-only. Off in dev.
	Secure bool
}

// Set writes the cookie for a freshly opened session.
func (c *SessionCookies) Set(w http.ResponseWriter, token string, sess domain.Session) error {
	raw, err := c.Signer.Sign(jwtx.NewSessionClaims(c.Issuer, sess.UserID, token, sess.CreatedAt, sess.ExpiresAt))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     nightlifesdk.CookieName,
		Value:    raw,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     nightlifesdk.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the raw session token from a well-signed cookie, or "".
func (c *SessionCookies) Token(r *http.Request) string {
	cookie, err := r.Cookie(nightlifesdk.CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims, err := c.Signer.Verify(cookie.Value)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("session cookie rejected", "err", err)
		return ""
	}
	return claims.SID
}

// Authenticate implements httpx.Authenticator.
func (c *SessionCookies) Authenticate(r *http.Request) (httpx.Principal, bool, error) {
	token := c.Token(r)
	if token == "" {
		return httpx.Principal{}, false, nil
	}

	sess, err := c.Auth.Authenticate(r.Context(), token)
	if errors.Is(err, service.ErrNotAuthenticated) {
		return httpx.Principal{}, false, nil
	}
	if err != nil {
		return httpx.Principal{}, false, err
	}

	return httpx.Principal{
		UserID:   sess.UserID,
		Username: sess.Username,
		Token:    token,
	}, true, nil
}
