package service

import "errors"

// Errors returned to handlers. Anything else is unexpected and surfaces as
// a generic internal error.
var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotAuthenticated   = errors.New("not_authenticated")
	ErrDataIntegrity      = errors.New("data_integrity")

	ErrLocationNotFound     = errors.New("location_not_found")
	ErrVenueNotFound        = errors.New("venue_not_found")
	ErrDirectoryUnavailable = errors.New("directory_unavailable")

	ErrUnknownProvider = errors.New("unknown_identity_provider")
)
