// Package yelp is a minimal client for the Yelp Fusion business directory.
//
// Responses are returned as raw JSON so callers can pass them through to
// their own clients unchanged. Errors from the API are surfaced as *APIError.
package yelp
