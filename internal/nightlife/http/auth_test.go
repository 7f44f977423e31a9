package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp nightlifesdk.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "alice", resp.Username)
	require.NotEmpty(t, resp.UserID)

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "taken", body: `{"username":"alice","password":"other"}`, code: http.StatusConflict},
		{name: "missing password", body: `{"username":"bob"}`, code: http.StatusBadRequest},
		{name: "blank username", body: `{"username":"  ","password":"pw"}`, code: http.StatusBadRequest},
		{name: "empty body", body: "", code: http.StatusBadRequest},
		{name: "malformed", body: `{"username":`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/register", tt.body)
			require.Equal(t, tt.code, rec.Code)

			var body nightlifesdk.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("sets session cookie", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp nightlifesdk.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Authenticated)
		require.Equal(t, "alice", resp.Username)

		c := sessionCookie(t, rec)
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, "/", c.Path)
		require.Positive(t, c.MaxAge)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		wrong := s.do(t, http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`)
		unknown := s.do(t, http.MethodPost, "/api/login", `{"username":"mallory","password":"nope"}`)

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		require.JSONEq(t, wrong.Body.String(), unknown.Body.String())
		require.JSONEq(t, `{"authenticated":false,"error":"invalid username or password"}`, wrong.Body.String())
		require.Empty(t, wrong.Result().Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/login", `{"username":"alice"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCurrentSessionAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/current-session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"authenticated":false,"venuesAttendingIds":[]}`, rec.Body.String())

	cookie := s.login(t, "alice")

	rec = s.do(t, http.MethodGet, "/api/current-session", "", cookie)
	var view nightlifesdk.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.True(t, view.Authenticated)
	require.Equal(t, "alice", view.Username)
	require.Empty(t, view.VenuesAttendingIDs)

	rec = s.do(t, http.MethodGet, "/api/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())
	cleared := sessionCookie(t, rec)
	require.Negative(t, cleared.MaxAge)

	// the old cookie no longer resolves to a session
	rec = s.do(t, http.MethodGet, "/api/current-session", "", cookie)
	require.Contains(t, rec.Body.String(), `"authenticated":false`)

	t.Run("logout without a session", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/logout", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		bad := &http.Cookie{Name: nightlifesdk.CookieName, Value: cookie.Value + "x"}
		rec := s.do(t, http.MethodGet, "/api/current-session", "", bad)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"authenticated":false`)
	})
}

func TestOAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/auth/myspace", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/github", "")
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "https://github.example/"))

	var state *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookieName {
			state = c
		}
	}
	require.NotNil(t, state)
	require.Contains(t, location, "state="+state.Value)

	t.Run("state mismatch", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/auth/github/callback?code=good&state=forged", "", state)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("exchange failure", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/auth/github/callback?code=bad&state="+state.Value, "", state)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	rec = s.do(t, http.MethodGet, "/api/auth/github/callback?code=good&state="+state.Value, "", state)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.do(t, http.MethodGet, "/api/current-session", "", sessionCookie(t, rec))
	require.Contains(t, rec.Body.String(), `"username":"octocat"`)
}
