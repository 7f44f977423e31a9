package domain

import "time"

// Session is a server-side login. ID is the fingerprint of the raw session
// token; the raw token only ever lives in the client's cookie.
type Session struct {
	ID        string
	UserID    string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
