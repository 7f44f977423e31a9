package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrInvalid   = errors.New("jwtx: invalid token")
	ErrExpired   = errors.New("jwtx: token expired")
	ErrNoSecret  = errors.New("jwtx: signing secret is empty")
)

// SessionClaims are carried by the session cookie. The SID is the raw
// session token; the server only stores its fingerprint.
type SessionClaims struct {
	jwt.RegisteredClaims

	SID string `json:"sid"`
}

// NewSessionClaims builds claims for a session expiring at expiresAt.
func NewSessionClaims(issuer, subject, sid string, now, expiresAt time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SID: sid,
	}
}
