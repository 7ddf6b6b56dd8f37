package llm

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError indicates a provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// OverloadedError indicates a transient provider failure (overload or 5xx)
// that is worth retrying after a pause.
type OverloadedError struct {
	Err      error
	Provider string
}

func (e *OverloadedError) Error() string {
	return fmt.Sprintf("%s overloaded: %v", e.Provider, e.Err)
}

func (e *OverloadedError) Unwrap() error {
	return e.Err
}

// NewOverloadedError creates an OverloadedError.
func NewOverloadedError(provider string, err error) *OverloadedError {
	return &OverloadedError{Err: err, Provider: provider}
}

// IsOverloaded reports whether err is, or wraps, an OverloadedError.
func IsOverloaded(err error) bool {
	var oe *OverloadedError
	return errors.As(err, &oe)
}
