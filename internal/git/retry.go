// Package git provides Git operations for autosync.
// This file implements retry with exponential backoff for transient git failures.
package git

import (
	"context"
	"math"
	"time"

	"github.com/mrz1836/autosync/internal/constants"
)

// RetryConfig configures retry behavior for operations.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts (default: 3).
	MaxAttempts int
	// InitialDelay is the wait after the first failed attempt (default: 1s).
	InitialDelay time.Duration
	// MaxDelay caps any single wait (default: 30s).
	MaxDelay time.Duration
	// Multiplier is the delay growth factor per attempt (default: 2.0).
	Multiplier float64
}

// DefaultRetryConfig returns the fetch retry schedule: 3 attempts with
// waits of 1s, 2s and 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  constants.FetchMaxAttempts,
		InitialDelay: constants.InitialBackoff,
		MaxDelay:     constants.MaxBackoff,
		Multiplier:   constants.FetchMultiplier,
	}
}

// Delay returns the wait after the failed attempt with the given 0-based
// index: InitialDelay * Multiplier^attempt, capped at MaxDelay.
func (c RetryConfig) Delay(attempt int) time.Duration {
	d := time.Duration(float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt)))
	if c.MaxDelay > 0 && d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// Sleeper waits for a duration unless ctx is done first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RetryableOperation defines the interface for operations that can be retried.
type RetryableOperation[R any] interface {
	// Attempt performs a single attempt. attempt is 1-based.
	Attempt(ctx context.Context, attempt int) (result R, success bool, err error)

	// ShouldRetry returns true if the operation should be retried given the error.
	ShouldRetry(err error) bool

	// OnRetryWait is called after a failed attempt, before its backoff.
	OnRetryWait(attempt int, delay time.Duration, err error)
}

// ExecuteWithRetry runs op until it succeeds, ShouldRetry declines, or
// MaxAttempts is reached. Every failed attempt is followed by its backoff,
// including the last one, so an exhausted run has waited the whole
// schedule (1+2+4s by default) before returning.
//
// Returns the last result, the number of attempts made and the last error.
func ExecuteWithRetry[R any](
	ctx context.Context,
	config RetryConfig,
	sleeper Sleeper,
	op RetryableOperation[R],
) (result R, attempts int, finalErr error) {
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		attempts = attempt + 1

		res, success, err := op.Attempt(ctx, attempts)
		if success {
			return res, attempts, nil
		}

		result = res
		finalErr = err

		if !op.ShouldRetry(err) {
			break
		}

		delay := config.Delay(attempt)
		op.OnRetryWait(attempts, delay, err)

		if sleepErr := sleeper.Sleep(ctx, delay); sleepErr != nil {
			return result, attempts, sleepErr
		}
	}

	return result, attempts, finalErr
}

// SimpleRetryOperation adapts plain functions to RetryableOperation.
type SimpleRetryOperation[R any] struct {
	AttemptFunc     func(ctx context.Context, attempt int) (R, bool, error)
	ShouldRetryFunc func(err error) bool
	OnRetryWaitFunc func(attempt int, delay time.Duration, err error)
}

// Attempt implements RetryableOperation.
func (s *SimpleRetryOperation[R]) Attempt(ctx context.Context, attempt int) (R, bool, error) {
	return s.AttemptFunc(ctx, attempt)
}

// ShouldRetry implements RetryableOperation. A nil ShouldRetryFunc retries every failure.
func (s *SimpleRetryOperation[R]) ShouldRetry(err error) bool {
	if s.ShouldRetryFunc == nil {
		return true
	}
	return s.ShouldRetryFunc(err)
}

// OnRetryWait implements RetryableOperation.
func (s *SimpleRetryOperation[R]) OnRetryWait(attempt int, delay time.Duration, err error) {
	if s.OnRetryWaitFunc != nil {
		s.OnRetryWaitFunc(attempt, delay, err)
	}
}

// Compile-time interface check.
var _ RetryableOperation[any] = (*SimpleRetryOperation[any])(nil)
