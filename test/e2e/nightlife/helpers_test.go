package nightlife_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/app"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end helpers. Each test gets its own service instance on a fresh
 * sqlite file, talking to a fake business directory over real HTTP.
 */

const testAPIKey = "test-directory-key"

// fakeDirectory answers the two directory endpoints the service uses.
type fakeDirectory struct {
	srv      *httptest.Server
	searches atomic.Int32
	lastURL  atomic.Value
}

func newFakeDirectory(t *testing.T) *fakeDirectory {
	t.Helper()
	d := &fakeDirectory{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/businesses/search", func(w http.ResponseWriter, r *http.Request) {
		d.searches.Add(1)
		d.lastURL.Store(r.URL.String())
		if r.Header.Get("Authorization") != "Bearer "+testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"TOKEN_INVALID","description":"Invalid access token"}}`))
			return
		}
		if r.URL.Query().Get("location") == "Atlantis" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"LOCATION_NOT_FOUND","description":"Could not execute search, try specifying a more exact location."}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"businesses":[{"id":"the-bar","name":"The Bar"},{"id":"the-pub","name":"The Pub"}],"total":2}`))
	})
	mux.HandleFunc("GET /v3/businesses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "the-bar" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"BUSINESS_NOT_FOUND","description":"The requested business could not be found."}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"the-bar","name":"The Bar","rating":4.5}`))
	})

	d.srv = httptest.NewServer(mux)
	t.Cleanup(d.srv.Close)
	return d
}

func (d *fakeDirectory) lastQuery() string {
	v, _ := d.lastURL.Load().(string)
	return v
}

type testEnv struct {
	baseURL   string
	directory *fakeDirectory
}

func baseConfig(t *testing.T, dir *fakeDirectory) app.Config {
	t.Helper()
	return app.Config{
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 3001,
		YelpAPIKey:           testAPIKey,
		YelpBaseURL:          dir.srv.URL,
		DatabaseFile:         filepath.Join(t.TempDir(), "nightlife.db"),
		DBMaxConns:           5,
		SessionSecret:        "e2e-secret",
		SessionTTL:           time.Hour,
		SessionBackend:       app.SessionBackendSQL,
		RequestTimeout:       5 * time.Second,
		ShutdownGracePeriod:  time.Second,
		HousekeepingSchedule: "@every 1h",
	}
}

// startService boots the application with cfg behind an httptest server.
func startService(t *testing.T, cfg app.Config, dir *fakeDirectory) *testEnv {
	t.Helper()

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Shutdown()
	})

	return &testEnv{baseURL: srv.URL, directory: dir}
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := newFakeDirectory(t)
	return startService(t, baseConfig(t, dir), dir)
}

func (e *testEnv) client(t *testing.T) *nightlifesdk.Client {
	t.Helper()
	c, err := nightlifesdk.NewClient(e.baseURL)
	require.NoError(t, err)
	return c
}

// loggedIn registers username and returns a client holding its session.
func (e *testEnv) loggedIn(t *testing.T, username string) (*nightlifesdk.Client, string) {
	t.Helper()
	c := e.client(t)

	reg, err := c.Register(t.Context(), username, "correct horse")
	require.NoError(t, err)

	login, err := c.Login(t.Context(), username, "correct horse")
	require.NoError(t, err)
	require.True(t, login.Authenticated)
	require.Equal(t, reg.UserID, login.UserID)

	return c, login.UserID
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, nightlifesdk.IsStatus(err, status), "want status %d, got %v", status, err)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
