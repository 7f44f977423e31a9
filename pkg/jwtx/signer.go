package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieSigner signs and verifies session cookies with HS256.
type CookieSigner struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewCookieSigner returns a signer keyed by secret.
func NewCookieSigner(secret, issuer string) (*CookieSigner, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &CookieSigner{
		secret: []byte(secret),
		issuer: issuer,
		leeway: 30 * time.Second,
	}, nil
}

// Sign returns the compact JWS for claims.
func (s *CookieSigner) Sign(claims SessionClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses raw, checks the signature, issuer and expiry, and returns
// the claims.
func (s *CookieSigner) Verify(raw string) (SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(s.leeway),
		jwt.WithExpirationRequired(),
	)

	var claims SessionClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return SessionClaims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return SessionClaims{}, ErrMalformed
	default:
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if claims.SID == "" {
		return SessionClaims{}, ErrInvalid
	}
	return claims, nil
}
