package retry

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// BackoffKind selects the delay progression between retries.
type BackoffKind int

const (
	// BackoffLinear waits the same delay before every retry.
	BackoffLinear BackoffKind = iota

	// BackoffExponential doubles the delay before each successive retry.
	BackoffExponential
)

// String returns the string representation of the backoff kind.
func (k BackoffKind) String() string {
	switch k {
	case BackoffLinear:
		return "linear"
	case BackoffExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Policy is an immutable description of how an operation is retried.
// A Policy is never mutated: the With* builders return derived copies, so a
// single Policy value can be shared freely across concurrent Execute calls.
//
// Example:
//
//	policy := retry.DefaultPolicy().
//	    WithMaxAttempts(5).
//	    WithBackoff(retry.BackoffExponential)
type Policy struct {
	// ShouldRetry decides whether a failed attempt is eligible for retry.
	// A nil filter retries every error.
	ShouldRetry Filter

	// InitialDelay is the wait before the first retry.
	// Default: 1 second
	InitialDelay time.Duration

	// Backoff selects the delay progression.
	// Default: BackoffLinear
	Backoff BackoffKind

	// MaxAttempts is the number of additional attempts allowed after the
	// first failure. Zero means the first failure is final.
	// Default: 3
	MaxAttempts int
}

// DefaultPolicy returns a policy with sensible defaults: three retries, one
// second between attempts, linear backoff, and every error retryable.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Backoff:      BackoffLinear,
	}
}

// WithMaxAttempts returns a copy of the policy allowing n additional attempts
// after the first failure.
//
// Example:
//
//	retry.DefaultPolicy().WithMaxAttempts(5) // up to 5 retries
func (p Policy) WithMaxAttempts(n int) Policy {
	p.MaxAttempts = n
	return p
}

// WithInitialDelay returns a copy of the policy waiting d before the first
// retry.
func (p Policy) WithInitialDelay(d time.Duration) Policy {
	p.InitialDelay = d
	return p
}

// WithBackoff returns a copy of the policy using the given delay progression.
//
// Example:
//
//	retry.DefaultPolicy().WithBackoff(retry.BackoffExponential)
//	// With InitialDelay=1s: delays 1s, 2s, 4s, ...
func (p Policy) WithBackoff(kind BackoffKind) Policy {
	p.Backoff = kind
	return p
}

// WithShouldRetry returns a copy of the policy using fn to decide retry
// eligibility. A nil fn restores the default of retrying every error.
//
// Example:
//
//	retry.DefaultPolicy().WithShouldRetry(retry.Transient())
func (p Policy) WithShouldRetry(fn Filter) Policy {
	p.ShouldRetry = fn
	return p
}

// backoff builds the delay progression for one Execute call. Each call gets
// its own backoff state, keeping the Policy itself free of mutation.
func (p Policy) backoff() retry.Backoff {
	attempts := p.MaxAttempts
	if attempts < 0 {
		attempts = 0
	}

	// The library constructors reject non-positive bases.
	base := p.InitialDelay
	if base <= 0 {
		base = time.Nanosecond
	}

	var b retry.Backoff
	switch p.Backoff {
	case BackoffExponential:
		b = retry.NewExponential(base)
	default:
		b = retry.NewConstant(base)
	}

	return retry.WithMaxRetries(uint64(attempts), b) // #nosec G115 - bounds checked above
}
