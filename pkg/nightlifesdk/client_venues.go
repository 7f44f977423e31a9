package nightlifesdk

import (
	"context"
	"net/http"
	"net/url"
)

// AddVenue marks the logged-in user as attending yelpID.
func (c *Client) AddVenue(ctx context.Context, yelpID string) (*MessageResponse, error) {
	return c.attend(ctx, "/api/venues-attending", AttendRequest{VenueYelpID: yelpID})
}

// AddVenueFor is AddVenue with an explicit user id, which the service checks
// against the session.
func (c *Client) AddVenueFor(ctx context.Context, userID, yelpID string) (*MessageResponse, error) {
	return c.attend(ctx, "/api/venues-attending", AttendRequest{VenueYelpID: yelpID, UserID: userID})
}

func (c *Client) RemoveVenue(ctx context.Context, yelpID string) (*MessageResponse, error) {
	return c.attend(ctx, "/api/venue-remove", AttendRequest{VenueYelpID: yelpID})
}

func (c *Client) attend(ctx context.Context, path string, in AttendRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, path, in)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NumberAttending(ctx context.Context, yelpID string) (*CountResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/number-attending/"+url.PathEscape(yelpID), nil)
	if err != nil {
		return nil, err
	}

	var out CountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
