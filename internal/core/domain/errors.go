package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is a local precondition failure: an operation
	// that needs a stored token found none. No request is sent.
	ErrNotAuthenticated = errors.New("no authentication token stored")

	// ErrTimeout means the request deadline elapsed before a response.
	ErrTimeout = errors.New("request timed out")

	// ErrConnection covers transport-level failures (DNS, refused, reset).
	ErrConnection = errors.New("connection to server failed")

	// ErrUnauthorized is HTTP 401: the session is no longer valid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is HTTP 403: authenticated but insufficiently privileged.
	ErrForbidden = errors.New("forbidden")

	// ErrUnknown covers everything else, including undecodable bodies.
	ErrUnknown = errors.New("unknown request error")
)

// APIError is a decoded non-2xx response from the backend. The backend sends
// message as either a single string or a list; it is normalized to one joined
// string at decode time.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return e.Message
}

// Unwrap maps auth-related statuses onto their sentinels so callers can use
// errors.Is(err, ErrUnauthorized) without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}
	return nil
}
