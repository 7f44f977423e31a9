package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// Authenticator resolves the caller of a request from its session cookie.
// It returns ok=false when the request carries no valid session.
type Authenticator interface {
	Authenticate(r *http.Request) (p Principal, ok bool, err error)
}

// SessionMiddleware attaches the caller to the request context when a valid
// session is present. Anonymous requests pass through untouched.
func SessionMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok, err := a.Authenticate(r)
			if err != nil {
				slogx.FromContext(r.Context()).Error("session lookup failed", "err", err)
				WriteInternalError(w)
				return
			}
			if ok {
				ctx := ContextWithPrincipal(r.Context(), p)
				ctx = slogx.With(ctx, "user_id", p.UserID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects requests without an authenticated caller. It must
// run after SessionMiddleware.
func RequireSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				WriteJSON(w, http.StatusUnauthorized, map[string]any{
					"authenticated": false,
					"error":         "not authenticated",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
