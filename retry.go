// Package retry re-executes a fallible asynchronous operation on failure, up
// to a bounded number of attempts, waiting between attempts according to a
// configurable backoff policy. It supports any result type using Go generics
// and integrates with jp-go-errors for standardized error classification.
package retry

import (
	"context"
	"time"
)

// Operation is a zero-argument asynchronous computation producing a value of
// type T or failing with an error. Each retry invokes it again from scratch;
// the caller is responsible for making re-execution safe.
//
// Example:
//
//	fetch := func(ctx context.Context) (*http.Response, error) {
//	    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return http.DefaultClient.Do(req)
//	}
type Operation[T any] func(ctx context.Context) (T, error)

// Observer is notified immediately before each wait-then-retry step. delay is
// the wait about to be awaited for this retry, and remaining is the attempt
// budget left after this retry. Observers are for logging and metrics; they
// must not panic.
type Observer func(err error, delay time.Duration, remaining int)

// Execute invokes op and, on failure, retries it under the given policy.
// It returns op's result as soon as an attempt succeeds. Once the attempt
// budget is exhausted, or the policy's filter rejects an error, the error
// from the final attempt is returned exactly as op produced it — never
// wrapped, so errors.Is, errors.As and reference equality all still hold.
//
// Each call runs a single sequence of attempts; concurrent calls sharing a
// Policy value are fully independent. The context is passed through to op,
// checked before each attempt, and honored during the wait between attempts:
// if it ends mid-wait, Execute returns ctx.Err().
//
// A nil op is a programming error and panics.
//
// Example:
//
//	result, err := retry.Execute(ctx, fetch,
//	    retry.DefaultPolicy().WithBackoff(retry.BackoffExponential),
//	    retry.WithObserver(func(err error, delay time.Duration, remaining int) {
//	        log.Printf("retrying in %s (%d left): %v", delay, remaining, err)
//	    }),
//	)
func Execute[T any](ctx context.Context, op Operation[T], policy Policy, opts ...Option) (T, error) {
	var zero T

	if op == nil {
		panic("retry: nil operation")
	}

	cfg := defaultExecuteConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	shouldRetry := policy.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = func(error) bool { return true }
	}

	remaining := policy.MaxAttempts
	if remaining < 0 {
		remaining = 0
	}
	backoff := policy.backoff()

	for attempt := 1; ; attempt++ {
		// Don't start an attempt the caller has already abandoned.
		if err := ctx.Err(); err != nil {
			cfg.logger.Warn("context done before attempt (expected condition)",
				"attempt", attempt,
				"error", err)
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				cfg.logger.Info("operation succeeded after retry",
					"attempts", attempt)
			}
			return result, nil
		}

		delay, stop := backoff.Next()
		if stop {
			cfg.logger.Warn("operation failed after retries",
				"attempts", attempt,
				"error", err)
			return zero, err
		}

		if !shouldRetry(err) {
			cfg.logger.Debug("non-retryable error, giving up",
				"attempt", attempt,
				"error", err)
			return zero, err
		}

		remaining--
		if cfg.observer != nil {
			cfg.observer(err, delay, remaining)
		}

		cfg.logger.Debug("retrying operation after delay",
			"attempt", attempt,
			"delay", delay,
			"remaining", remaining,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
