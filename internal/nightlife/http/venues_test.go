package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
	"github.com/stretchr/testify/require"
)

func TestVenuesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc"}`},
		{http.MethodPost, "/api/venue-remove", `{"venueYelpId":"abc"}`},
		{http.MethodGet, "/api/number-attending/abc", ""},
	} {
		rec := s.do(t, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
		require.JSONEq(t, `{"authenticated":false,"error":"not authenticated"}`, rec.Body.String())
	}
}

func TestAttendanceRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.login(t, "alice")
	bob := s.login(t, "bob")

	rec := s.do(t, http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"venue added"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code, "attending twice is not an error")

	rec = s.do(t, http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc"}`, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/number-attending/abc", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var count nightlifesdk.CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	require.True(t, count.Success)
	require.Equal(t, "abc", count.YelpID)
	require.NotEmpty(t, count.VenueID)
	require.Equal(t, 2, count.Count)

	rec = s.do(t, http.MethodGet, "/api/current-session", "", alice)
	require.Contains(t, rec.Body.String(), `"venuesAttendingIds":["abc"]`)

	rec = s.do(t, http.MethodPost, "/api/venue-remove", `{"venueYelpId":"abc"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/number-attending/abc", "", alice)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	require.Equal(t, 1, count.Count)

	rec = s.do(t, http.MethodPost, "/api/venue-remove", `{"venueYelpId":"never-seen"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/number-attending/never-seen", "", alice)
	require.JSONEq(t, `{"success":true,"yelpId":"never-seen","venueId":"","count":0}`, rec.Body.String())
}

func TestAttendanceValidation(t *testing.T) {
	s := newTestServer(t)
	alice := s.login(t, "alice")

	t.Run("missing venue id", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/venues-attending", `{}`, alice)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"success":false,"error":"venueYelpId is required"}`, rec.Body.String())
	})

	t.Run("other user's id", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc","userId":"someone-else"}`, alice)
		require.Equal(t, http.StatusForbidden, rec.Code)

		n, err := s.store.Venues().CountVenuesByYelpID(t.Context(), "abc")
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("own id is accepted", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/current-session", "", alice)
		var view nightlifesdk.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

		rec = s.do(t, http.MethodPost, "/api/venues-attending", `{"venueYelpId":"abc","userId":"`+view.UserID+`"}`, alice)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
