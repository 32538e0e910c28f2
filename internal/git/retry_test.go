// Package git provides Git operations for autosync.
// This file tests the shared retry logic.
package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Static test errors for err113 compliance.
var (
	errNetworkTest    = errors.New("network error")
	errPersistentTest = errors.New("persistent network error")
	errAuthTest       = errors.New("authentication failed")
)

// recordingSleeper records requested waits without sleeping.
type recordingSleeper struct {
	delays []time.Duration
	cancel context.CancelFunc
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	if s.cancel != nil {
		s.cancel()
	}
	return ctx.Err()
}

func testRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	assert.Equal(t, 3, config.MaxAttempts)
	assert.Equal(t, time.Second, config.InitialDelay)
	assert.Equal(t, 30*time.Second, config.MaxDelay)
	assert.InDelta(t, 2.0, config.Multiplier, 0.0001)
}

func TestRetryConfig_Delay(t *testing.T) {
	config := testRetryConfig()

	assert.Equal(t, time.Second, config.Delay(0))
	assert.Equal(t, 2*time.Second, config.Delay(1))
	assert.Equal(t, 4*time.Second, config.Delay(2))
	assert.Equal(t, 16*time.Second, config.Delay(4))
	assert.Equal(t, 30*time.Second, config.Delay(5), "capped at MaxDelay")

	config.MaxDelay = 0
	assert.Equal(t, 64*time.Second, config.Delay(6), "zero MaxDelay disables the cap")
}

func TestExecuteWithRetry_Success(t *testing.T) {
	sleeper := &recordingSleeper{}
	attemptCount := 0
	op := &SimpleRetryOperation[string]{
		AttemptFunc: func(_ context.Context, _ int) (string, bool, error) {
			attemptCount++
			return "success", true, nil
		},
	}

	result, attempts, err := ExecuteWithRetry(context.Background(), testRetryConfig(), sleeper, op)

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, attemptCount)
	assert.Empty(t, sleeper.delays)
}

func TestExecuteWithRetry_RetriesOnFailure(t *testing.T) {
	sleeper := &recordingSleeper{}
	attemptCount := 0
	op := &SimpleRetryOperation[string]{
		AttemptFunc: func(_ context.Context, _ int) (string, bool, error) {
			attemptCount++
			if attemptCount < 3 {
				return "", false, errNetworkTest
			}
			return "success after retries", true, nil
		},
		ShouldRetryFunc: func(err error) bool {
			return errors.Is(err, errNetworkTest)
		},
	}

	result, attempts, err := ExecuteWithRetry(context.Background(), testRetryConfig(), sleeper, op)

	require.NoError(t, err)
	assert.Equal(t, "success after retries", result)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.delays)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	var waits []int
	op := &SimpleRetryOperation[string]{
		AttemptFunc: func(_ context.Context, _ int) (string, bool, error) {
			return "failed", false, errPersistentTest
		},
		OnRetryWaitFunc: func(attempt int, _ time.Duration, err error) {
			assert.ErrorIs(t, err, errPersistentTest)
			waits = append(waits, attempt)
		},
	}

	result, attempts, err := ExecuteWithRetry(context.Background(), testRetryConfig(), sleeper, op)

	require.ErrorIs(t, err, errPersistentTest)
	assert.Equal(t, "failed", result)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{1, 2, 3}, waits)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.delays,
		"the final failed attempt is followed by its backoff too")
}

func TestExecuteWithRetry_NoRetryOnNonRetryableError(t *testing.T) {
	sleeper := &recordingSleeper{}
	op := &SimpleRetryOperation[string]{
		AttemptFunc: func(_ context.Context, _ int) (string, bool, error) {
			return "auth_failed", false, errAuthTest
		},
		ShouldRetryFunc: func(_ error) bool {
			return false
		},
	}

	result, attempts, err := ExecuteWithRetry(context.Background(), testRetryConfig(), sleeper, op)

	require.ErrorIs(t, err, errAuthTest)
	assert.Equal(t, "auth_failed", result)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, sleeper.delays)
}

func TestExecuteWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sleeper := &recordingSleeper{cancel: cancel}
	op := &SimpleRetryOperation[string]{
		AttemptFunc: func(_ context.Context, _ int) (string, bool, error) {
			return "", false, errNetworkTest
		},
	}

	_, attempts, err := ExecuteWithRetry(ctx, testRetryConfig(), sleeper, op)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_PassesAttemptNumber(t *testing.T) {
	var seen []int
	op := &SimpleRetryOperation[struct{}]{
		AttemptFunc: func(_ context.Context, attempt int) (struct{}, bool, error) {
			seen = append(seen, attempt)
			return struct{}{}, attempt == 2, errNetworkTest
		},
	}

	_, attempts, err := ExecuteWithRetry(context.Background(), testRetryConfig(), &recordingSleeper{}, op)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []int{1, 2}, seen)
}
