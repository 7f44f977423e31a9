package yelp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx response from the directory.
type APIError struct {
	StatusCode  int
	Code        string // e.g. LOCATION_NOT_FOUND
	Description string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("yelp: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("yelp: HTTP %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// parseAPIError reads {"error":{"code":...,"description":...}}. Bodies in any
// other shape still yield an APIError with the status text as description.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "error.code", "error.description")
		e.Code = res[0].String()
		e.Description = res[1].String()
	}
	if e.Description == "" {
		e.Description = http.StatusText(status)
	}
	return e
}
