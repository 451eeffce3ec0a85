package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped by errors returned when a backend cannot be
// reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry runs an operation up to Attempts times, doubling Delay after each
// retryable failure.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry is used when connecting to remote backends.
var DefaultRetry = Retry{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns a non-retryable error, the attempts
// run out or ctx is done.
func (r Retry) Do(ctx context.Context, fn func() error) error {
	attempts := max(r.Attempts, 1)
	delay := r.Delay
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
