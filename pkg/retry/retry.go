// Package retry repeats an operation until it succeeds or fails for good.
// It drives the interactive re-prompt loops: an attempt that fails with a
// retryable error is simply tried again.
// No external dependencies - uses only standard library.
package retry

import (
	"context"
	"errors"
)

// RetryableError indicates that an error is retryable.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable wraps an error to indicate it should be retried.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	return errors.As(err, &retryableErr)
}

// PermanentError indicates that an error should not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps an error to indicate it should not be retried.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent checks if an error is permanent (should not be retried).
func IsPermanent(err error) bool {
	var permanentErr *PermanentError
	return errors.As(err, &permanentErr)
}

// Unlimited disables the attempt cap.
const Unlimited = 0

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	// Unlimited (0) keeps trying until success or a non-retryable error.
	// Default: Unlimited
	MaxAttempts int

	// OnRetry is called after a failed attempt, before the next one.
	// The re-prompt loops print their hint here.
	OnRetry func(attempt int, err error)
}

// DefaultConfig returns a Config that retries forever.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: Unlimited,
	}
}

// Option is a functional option for configuring retries.
type Option func(*Config)

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxAttempts = n
		}
	}
}

// WithOnRetry sets a callback function called before each retry.
func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// Retrier manages retry operations.
type Retrier struct {
	config Config
}

// New creates a new Retrier with the given options.
func New(opts ...Option) *Retrier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Retrier{config: config}
}

// Do executes the operation with retries.
// Only errors wrapped with Retryable are tried again; a PermanentError or
// any other error stops immediately. Permanent and retryable wrappers are
// removed from the returned error. Cancellation of ctx wins over the last
// attempt's error.
func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; r.config.MaxAttempts == Unlimited || attempt <= r.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}

		lastErr = unwrapMarker(err)

		if IsPermanent(err) || !IsRetryable(err) {
			return lastErr
		}

		if attempt == r.config.MaxAttempts {
			return lastErr
		}

		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, lastErr)
		}
	}

	return lastErr
}

// unwrapMarker strips a top-level RetryableError or PermanentError.
func unwrapMarker(err error) error {
	switch e := err.(type) {
	case *RetryableError:
		return e.Err
	case *PermanentError:
		return e.Err
	}
	return err
}

// DoWithData is a helper for operations that return data.
func DoWithData[T any](ctx context.Context, operation func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var result T
	err := New(opts...).Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = operation(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// PromptOptions configures interactive input: unlimited attempts, calling
// onRetry after each rejected attempt.
func PromptOptions(onRetry func(attempt int, err error)) []Option {
	return []Option{
		WithMaxAttempts(Unlimited),
		WithOnRetry(onRetry),
	}
}
