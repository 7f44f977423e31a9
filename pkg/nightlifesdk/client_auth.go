package nightlifesdk

import (
	"context"
	"net/http"
)

// Register creates a local account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/register", RegisterRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/login", LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/logout", nil)
	if err != nil {
		return err
	}

	var out SuccessResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// CurrentSession never fails for an anonymous client; it reports
// Authenticated=false instead.
func (c *Client) CurrentSession(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/current-session", nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
