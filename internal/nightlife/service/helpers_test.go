package service

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "nightlife.db"), sqlite.DefaultMaxConns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	s := newTestStore(t)
	return &AuthService{
		Store:        s,
		Sessions:     s.Sessions(),
		PasswordCost: bcrypt.MinCost,
	}
}
