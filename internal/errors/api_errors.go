package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork marks a request that never produced a usable response.
var ErrNetwork = errors.New("network error")

// ErrStaleResponse marks a completed request whose result was superseded by
// a newer session change. It is never surfaced to callers.
var ErrStaleResponse = errors.New("stale response")

// Kind classifies a failure for display.
type Kind int

const (
	KindNone Kind = iota
	// KindNetwork: the request did not complete, or a non-2xx carried no
	// readable reason.
	KindNetwork
	// KindAuth: the backend rejected the request with a reason.
	KindAuth
	KindStale
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindStale:
		return "stale"
	default:
		return "unknown"
	}
}

// APIError represents a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the backend refused the session.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NetworkError wraps a transport failure so it matches ErrNetwork.
func NetworkError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}

// Classify maps err onto the failure taxonomy.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrStaleResponse) {
		return KindStale
	}
	if errors.Is(err, ErrNetwork) {
		return KindNetwork
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return KindNetwork
		}
		return KindAuth
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnknown
}

// Reason returns the text a form should show for err.
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch Classify(err) {
	case KindNone:
		return ""
	case KindNetwork:
		return "Network error"
	default:
		return "Unknown error"
	}
}
