package modash_client

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPlatform is returned before any network call when the
	// requested platform is not one of the supported values.
	ErrInvalidPlatform = errors.New("unsupported platform")
	// ErrInvalidInput is returned for malformed arguments (empty user ID,
	// negative page, unknown dictionary kind).
	ErrInvalidInput = errors.New("invalid input")
)

// RateLimitError is returned when the retry budget is exhausted while the
// provider is still answering 429. RetryAfter is the last delay that was
// computed (server-provided or backoff schedule).
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by provider, retry after %s", e.RetryAfter)
}

// APIError carries a non-2xx upstream response. It is never retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}

// MaxRetriesError is returned when transport-level failures persist through
// the whole retry schedule.
type MaxRetriesError struct {
	Attempts int
	Err      error
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *MaxRetriesError) Unwrap() error { return e.Err }

// ValidationError is returned when an upstream payload decodes but is missing
// fields this client requires.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid provider payload: field %q %s", e.Field, e.Reason)
}
