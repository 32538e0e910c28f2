package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireGit skips the test when no git binary is available.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// runGit runs git in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// setupTestRepo creates a temporary git repository for testing.
// Returns the path to the repo.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init", "-b", "main")
	runGit(t, tmpDir, "config", "user.email", "test@autosync.local")
	runGit(t, tmpDir, "config", "user.name", "Autosync Test")
	return tmpDir
}

// createFile creates a file with content in the repo.
func createFile(t *testing.T, repoPath, filename, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(repoPath, filename), []byte(content), 0o600)
	require.NoError(t, err, "failed to create file")
}

func TestResult_OK(t *testing.T) {
	assert.True(t, Result{}.OK())
	assert.False(t, Result{ExitCode: 1}.OK())
	assert.False(t, Result{ExitCode: 124}.OK())
}

func TestResult_Output(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{"both", Result{Stdout: "out", Stderr: "err"}, "err\nout"},
		{"stdout only", Result{Stdout: "out"}, "out"},
		{"stderr only", Result{Stderr: "err"}, "err"},
		{"neither", Result{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Output())
		})
	}
}
