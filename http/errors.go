package http

import (
	"fmt"
	"time"
)

// RateLimitError indicates the server throttled the request.
type RateLimitError struct {
	// StatusCode is the HTTP status code (429 or 503).
	StatusCode int
	// RetryAfter is the server-suggested wait, zero if none was given.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (status %d): retry after %v", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited (status %d)", e.StatusCode)
}

// HTTPError indicates a non-2xx response that is not a throttling signal.
type HTTPError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the response body, possibly truncated.
	Body []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// IsThrottle reports whether err is a throttling signal worth backing off for.
func IsThrottle(err error) bool {
	_, ok := err.(*RateLimitError)
	return ok
}
