package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchBackoffSchedule(t *testing.T) {
	t.Parallel()

	delay := InitialBackoff
	var total time.Duration
	for range FetchMaxAttempts {
		total += delay
		delay = time.Duration(float64(delay) * FetchMultiplier)
	}
	assert.Equal(t, 7*time.Second, total)
}

func TestLockFilePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "git-repo-auto-sync", LockFilePrefix)
	assert.NotContains(t, LockFilePrefix, "/")
}
