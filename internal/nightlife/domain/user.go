package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt; empty for users created through an identity provider
	CreatedAt    time.Time
}

// ExternalIdentity is a user as asserted by an OAuth identity provider.
type ExternalIdentity struct {
	Provider string // e.g. "github"
	Subject  string // provider-scoped stable user id
	Username string // suggested local username
}
