package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/sqlite"
	"github.com/aussiebroadwan/nightlife/pkg/jwtx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
	"github.com/aussiebroadwan/nightlife/pkg/yelp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeDirectory struct {
	params yelp.SearchParams
	body   []byte
	err    error
}

func (f *fakeDirectory) Search(ctx context.Context, p yelp.SearchParams) ([]byte, error) {
	f.params = p
	return f.body, f.err
}

func (f *fakeDirectory) Business(ctx context.Context, id string) ([]byte, error) {
	return f.body, f.err
}

type stubProvider struct{}

func (stubProvider) Name() string { return "github" }

func (stubProvider) AuthCodeURL(state string) string {
	return "https://github.example/login/oauth/authorize?state=" + state
}

func (stubProvider) Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error) {
	if code != "good" {
		return domain.ExternalIdentity{}, io.ErrUnexpectedEOF
	}
	return domain.ExternalIdentity{Subject: "42", Username: "octocat"}, nil
}

type testServer struct {
	router *Router
	store  *sqlite.Store
	dir    *fakeDirectory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "nightlife.db"), sqlite.DefaultMaxConns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewCookieSigner("test-secret", "nightlife")
	require.NoError(t, err)

	auth := &service.AuthService{Store: st, Sessions: st.Sessions(), PasswordCost: bcrypt.MinCost}
	dir := &fakeDirectory{body: []byte(`{"businesses":[{"id":"abc","name":"The Bar"}],"total":1}`)}

	r := NewRouter("test", st, slogx.Discard(), RouterOptions{
		CORSOrigins: []string{"https://nightlife.example"},
	})
	r.AuthService = auth
	r.AttendanceService = &service.AttendanceService{Store: st}
	r.DirectoryService = &service.DirectoryService{Client: dir}
	r.Providers = service.NewIdentityProviders(stubProvider{})
	r.Cookies = &SessionCookies{Signer: signer, Auth: auth, Issuer: "nightlife"}
	r.ApplyRoutes()

	return &testServer{router: r, store: st, dir: dir}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login registers username and returns its session cookie.
func (s *testServer) login(t *testing.T, username string) *http.Cookie {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/register", `{"username":"`+username+`","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/login", `{"username":"`+username+`","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == nightlifesdk.CookieName {
			return c
		}
	}
	require.FailNow(t, "no session cookie set")
	return nil
}
