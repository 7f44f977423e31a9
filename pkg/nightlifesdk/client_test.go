package nightlifesdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientKeepsSessionCookie(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "signed", Path: "/"})
		_ = json.NewEncoder(w).Encode(LoginResponse{Authenticated: true, UserID: "u1", Username: "alice"})
	})
	mux.HandleFunc("GET /api/current-session", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(CookieName)
		_ = json.NewEncoder(w).Encode(SessionResponse{Authenticated: err == nil, VenuesAttendingIDs: []string{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	require.Equal(t, srv.URL, c.BaseURL)

	ctx := context.Background()
	before, err := c.CurrentSession(ctx)
	require.NoError(t, err)
	require.False(t, before.Authenticated)

	login, err := c.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "u1", login.UserID)

	after, err := c.CurrentSession(ctx)
	require.NoError(t, err)
	require.True(t, after.Authenticated)
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "error field", status: http.StatusNotFound, body: `{"error":"venue_not_found"}`, wantMsg: ErrorVenueNotFound},
		{name: "success false", status: http.StatusBadRequest, body: `{"success":false,"error":"venueYelpId is required"}`, wantMsg: "venueYelpId is required"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>`, wantMsg: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c, err := NewClient(srv.URL)
			require.NoError(t, err)

			_, err = c.Business(context.Background(), "abc")
			require.True(t, IsStatus(err, tt.status))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestSearchSendsFilters(t *testing.T) {
	t.Parallel()

	var got SearchRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"businesses":[]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	raw, err := c.Search(context.Background(), "New York", SearchRequest{Price: 2, OpenNow: true, SortBy: "rating"})
	require.NoError(t, err)
	require.JSONEq(t, `{"businesses":[]}`, string(raw))
	require.Equal(t, "/api/yelp-data/New%20York", gotPath)
	require.Equal(t, SearchRequest{Price: 2, OpenNow: true, SortBy: "rating"}, got)
}
