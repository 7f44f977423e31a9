package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/pkg/cryptox"
	"github.com/aussiebroadwan/nightlife/pkg/idx"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
)

// DefaultSessionTTL is how long a login lasts without activity limits.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionView is what the current-session endpoint reports.
type SessionView struct {
	Authenticated      bool
	UserID             string
	Username           string
	VenuesAttendingIDs []string
}

type AuthService struct {
	Store store.Store
	// Sessions may be the SQL session table or an external session store.
	Sessions   store.Sessions
	SessionTTL time.Duration

	// PasswordCost overrides cryptox.PasswordCost when non-zero.
	PasswordCost int
	Now          func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

// Register creates a local account. The username is claimed by a single
// insert against a unique column so two concurrent registrations cannot both
// succeed.
func (s *AuthService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	cost := s.PasswordCost
	if cost == 0 {
		cost = cryptox.PasswordCost
	}
	hash, err := cryptox.HashPasswordWithCost(password, cost)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Login checks credentials and opens a session. It returns the raw session
// token, which must only ever be handed to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.Session{}, ErrInvalidInput
	}
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnPasswordCheck(password)
			l.Info("login failed", slog.String("reason", "unknown_user"))
			return "", domain.Session{}, ErrInvalidCredentials
		}
		return "", domain.Session{}, err
	}

	if u.PasswordHash == "" {
		cryptox.BurnPasswordCheck(password)
		l.Info("login failed", slog.String("reason", "no_local_password"), slog.String("user_id", u.ID))
		return "", domain.Session{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", u.ID), slog.Any("err", err))
		}
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
		return "", domain.Session{}, ErrInvalidCredentials
	}

	return s.openSession(ctx, u)
}

func (s *AuthService) openSession(ctx context.Context, u domain.User) (string, domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	now := s.now()
	sess := domain.Session{
		ID:        cryptox.FingerprintToken(token),
		UserID:    u.ID,
		Username:  u.Username,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Sessions.CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("create session: %w", err)
	}

	slogx.FromContext(ctx).Info("session opened", slog.String("user_id", u.ID), slog.Time("expires_at", sess.ExpiresAt))
	return token, sess, nil
}

// Authenticate resolves a raw session token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNotAuthenticated
	}

	sess, err := s.Sessions.GetSession(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrNotAuthenticated
		}
		return domain.Session{}, err
	}
	if sess.Expired(s.now()) {
		return domain.Session{}, ErrNotAuthenticated
	}
	return sess, nil
}

// Logout destroys the session behind token. Unknown or empty tokens are
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.DeleteSession(ctx, cryptox.FingerprintToken(token))
}

// CurrentSession reports the caller's auth state and the venues they attend.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (SessionView, error) {
	sess, err := s.Authenticate(ctx, token)
	if errors.Is(err, ErrNotAuthenticated) {
		return SessionView{Authenticated: false}, nil
	}
	if err != nil {
		return SessionView{}, err
	}

	ids, err := s.Store.Attendance().ListAttendingYelpIDs(ctx, sess.UserID)
	if err != nil {
		return SessionView{}, fmt.Errorf("list attending: %w", err)
	}

	return SessionView{
		Authenticated:      true,
		UserID:             sess.UserID,
		Username:           sess.Username,
		VenuesAttendingIDs: ids,
	}, nil
}

// LoginWithIdentity signs in the local user linked to an identity provider
// account, creating and linking one on first use.
func (s *AuthService) LoginWithIdentity(ctx context.Context, ident domain.ExternalIdentity) (string, domain.Session, error) {
	if ident.Provider == "" || ident.Subject == "" {
		return "", domain.Session{}, ErrInvalidInput
	}

	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().GetUserByExternalIdentity(ctx, ident.Provider, ident.Subject)
		if err == nil {
			u = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		username := identityUsername(ident, "")
		switch _, err := tx.Users().GetUserByUsername(ctx, username); {
		case err == nil:
			// local name taken: qualify it with the provider subject
			username = identityUsername(ident, ident.Subject)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		u = domain.User{
			ID:        idx.New().String(),
			Username:  username,
			CreatedAt: s.now(),
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.Users().LinkExternalIdentity(ctx, ident.Provider, ident.Subject, u.ID)
	})
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("resolve identity: %w", err)
	}

	return s.openSession(ctx, u)
}

func identityUsername(ident domain.ExternalIdentity, qualifier string) string {
	base := strings.TrimSpace(ident.Username)
	if base == "" {
		base = ident.Provider + "_" + ident.Subject
	}
	if qualifier != "" {
		base += "@" + ident.Provider + ":" + qualifier
	}
	return base
}
