package nightlifesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Search runs a directory search for location. The result is the
// directory's own JSON document.
func (c *Client) Search(ctx context.Context, location string, req SearchRequest) (RawJSON, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/yelp-data/"+url.PathEscape(location), req)
	if err != nil {
		return nil, err
	}
	return readRaw(resp)
}

// Business looks up a single directory business by id.
func (c *Client) Business(ctx context.Context, yelpID string) (RawJSON, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/get-venues-attending/"+url.PathEscape(yelpID), nil)
	if err != nil {
		return nil, err
	}
	return readRaw(resp)
}
