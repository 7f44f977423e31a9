package nightlifesdk

import "encoding/json"

// ErrorResponse is the body of most failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by login. On failure Authenticated is false and
// Error holds a generic message.
type LoginResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Username      string `json:"username,omitempty"`
	Error         string `json:"error,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// SessionResponse reports the caller's session. VenuesAttendingIDs holds the
// directory ids of every venue the user attends.
type SessionResponse struct {
	Authenticated      bool     `json:"authenticated"`
	UserID             string   `json:"userId,omitempty"`
	Username           string   `json:"username,omitempty"`
	VenuesAttendingIDs []string `json:"venuesAttendingIds"`
}

type AttendRequest struct {
	VenueYelpID string `json:"venueYelpId"`
	// UserID is optional; when set it must match the session user.
	UserID string `json:"userId,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CountResponse struct {
	Success bool   `json:"success"`
	YelpID  string `json:"yelpId"`
	VenueID string `json:"venueId"`
	Count   int    `json:"count"`
}

// SearchRequest holds the optional search filters. Price is the maximum
// price tier, 1 to 4.
type SearchRequest struct {
	Price   int    `json:"price,omitempty"`
	OpenNow bool   `json:"openNow,omitempty"`
	SortBy  string `json:"sortBy,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions,omitempty"`
}

// RawJSON is a directory response passed through unchanged.
type RawJSON = json.RawMessage
