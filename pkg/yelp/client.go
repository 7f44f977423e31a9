package yelp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Yelp Fusion API endpoint.
const DefaultBaseURL = "https://api.yelp.com"

// maxResponseBytes bounds how much of a directory response is buffered.
const maxResponseBytes = 8 << 20

// Client talks to the directory over HTTP. The zero value is not usable;
// construct one with NewClient.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL. An empty baseURL selects
// DefaultBaseURL. The HTTP client carries no timeout of its own; callers
// bound each call through the context.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Transport: http.DefaultTransport},
	}
}

// Search runs a business search and returns the response body verbatim.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]byte, error) {
	return c.get(ctx, "/v3/businesses/search", p.Values())
}

// Business fetches a single business by its directory id.
func (c *Client) Business(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("yelp: empty business id")
	}
	return c.get(ctx, "/v3/businesses/"+url.PathEscape(id), nil)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("yelp: create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("yelp: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("yelp: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
