package retry

import "log/slog"

// executeConfig holds per-call knobs that sit outside the retry policy.
type executeConfig struct {
	observer Observer
	logger   *slog.Logger
}

// Option is a functional option for a single Execute call.
type Option func(*executeConfig)

// WithObserver registers an observer notified before each wait-then-retry
// step. Absent an observer, retries are silent apart from logging.
//
// Example:
//
//	retry.WithObserver(func(err error, delay time.Duration, remaining int) {
//	    metrics.RetryScheduled(delay, remaining)
//	})
func WithObserver(fn Observer) Option {
	return func(c *executeConfig) {
		c.observer = fn
	}
}

// WithLogger sets a custom logger for the retry sequence.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	retry.WithLogger(logger)
func WithLogger(logger *slog.Logger) Option {
	return func(c *executeConfig) {
		c.logger = logger
	}
}

// defaultExecuteConfig returns the per-call configuration defaults.
func defaultExecuteConfig() *executeConfig {
	return &executeConfig{
		logger: slog.Default(),
	}
}
