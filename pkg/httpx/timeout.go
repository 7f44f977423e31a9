package httpx

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds every request with d. The context deadline propagates to
// outbound directory calls and database queries made by handlers.
func Deadline(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
