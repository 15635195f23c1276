package retry

import (
	"context"
	"errors"

	pkgerrors "github.com/JohnPlummer/jp-go-errors"
)

// Filter decides whether a failed attempt is eligible for retry. It receives
// the operation's error exactly as produced. A policy with a nil Filter
// retries every error.
type Filter func(err error) bool

// Transient returns a filter that retries errors that look like transient
// failures: rate limits, timeouts, and errors it cannot classify. Context
// cancellation and deadline expiry are never retried — retrying under the
// same context would fail immediately.
func Transient() Filter {
	return func(err error) bool {
		if err == nil {
			return false
		}

		// Check context errors FIRST: context.DeadlineExceeded is also a
		// timeout, and the timeout check below must not reclaim it.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return false
		}

		if errors.Is(err, pkgerrors.ErrRateLimited) {
			return true
		}
		if pkgerrors.IsTimeout(err) {
			return true
		}

		statusCode := extractStatusCode(err)
		if statusCode == 0 {
			// Unknown errors might be transient (network issues, etc.)
			return true
		}

		return containsStatus(defaultRetryableStatuses, statusCode)
	}
}

// RetryOn returns a filter that retries only errors matching one of the given
// targets via errors.Is.
//
// Example:
//
//	policy := retry.DefaultPolicy().WithShouldRetry(
//	    retry.RetryOn(io.ErrUnexpectedEOF, syscall.ECONNRESET),
//	)
func RetryOn(targets ...error) Filter {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// SkipOn returns a filter that retries every error except those matching one
// of the given targets via errors.Is.
func SkipOn(targets ...error) Filter {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return false
			}
		}
		return err != nil
	}
}

// HTTPError represents an error with an associated HTTP status code.
// Many HTTP client libraries provide errors that implement this interface.
type HTTPError interface {
	error
	StatusCode() int
}

// defaultRetryableStatuses are the codes StatusFilter treats as retryable
// when none are given: 429 (rate limit) and the transient server errors.
var defaultRetryableStatuses = []int{429, 500, 502, 503, 504}

// StatusFilter returns a filter that retries errors carrying one of the given
// HTTP status codes. With no codes it defaults to 429, 500, 502, 503, 504.
// Errors without a status code are not retried by this filter.
//
// Example:
//
//	policy := retry.DefaultPolicy().WithShouldRetry(retry.StatusFilter())
func StatusFilter(codes ...int) Filter {
	if len(codes) == 0 {
		codes = defaultRetryableStatuses
	}
	return func(err error) bool {
		return containsStatus(codes, extractStatusCode(err))
	}
}

// extractStatusCode attempts to extract an HTTP status code from an error.
func extractStatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return 0
}

// containsStatus checks if a status code is in the list.
func containsStatus(statuses []int, status int) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// StatusCodeError wraps an error with an HTTP status code.
// Use this when you need to add status code information to an existing error.
type StatusCodeError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *StatusCodeError) Error() string {
	return e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *StatusCodeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code.
// This implements the HTTPError interface.
func (e *StatusCodeError) StatusCode() int {
	return e.Code
}

// NewStatusCodeError creates a new StatusCodeError.
// This is useful when wrapping errors from systems that don't provide status codes.
//
// Example:
//
//	err := doRequest()
//	if err != nil {
//	    return retry.NewStatusCodeError(http.StatusServiceUnavailable, err)
//	}
func NewStatusCodeError(statusCode int, err error) error {
	return &StatusCodeError{
		Code: statusCode,
		Err:  err,
	}
}
