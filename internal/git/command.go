// Package git provides Git operations for autosync.
// This file implements the CLIRunner which shells out to the git binary.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/autosync/internal/constants"
)

// timeoutMessage is the Stderr of a Result produced by a timed-out command.
const timeoutMessage = "Git command timed out"

// timeoutExitCode is the ExitCode of a Result produced by a timed-out command.
const timeoutExitCode = constants.TimeoutExitCode

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed on timeout.
const waitDelay = 2 * time.Second

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	binary  string
	workDir string
	timeout time.Duration
	logger  zerolog.Logger
}

// RunnerOption configures a CLIRunner.
type RunnerOption func(*CLIRunner)

// WithBinary overrides the git executable.
func WithBinary(binary string) RunnerOption {
	return func(r *CLIRunner) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// WithTimeout overrides the per-command timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *CLIRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRunnerLogger sets the logger used for command tracing.
func WithRunnerLogger(logger zerolog.Logger) RunnerOption {
	return func(r *CLIRunner) {
		r.logger = logger
	}
}

// NewCLIRunner creates a CLIRunner that runs commands in workDir.
func NewCLIRunner(workDir string, opts ...RunnerOption) *CLIRunner {
	r := &CLIRunner{
		binary:  constants.DefaultGitBinary,
		workDir: workDir,
		timeout: constants.DefaultCommandTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes git with args in the runner's working directory.
// A command still running after the timeout is killed and reported with
// exit code 124; a command that cannot be started is reported with exit
// code 1 and the failure in Stderr.
func (r *CLIRunner) Run(ctx context.Context, args ...string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := r.toResult(ctx, err, &stdout, &stderr)

	r.logger.Debug().
		Strs("args", args).
		Int("exit_code", result.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("git command finished")

	return result
}

// toResult converts the outcome of cmd.Run into a Result.
func (r *CLIRunner) toResult(ctx context.Context, err error, stdout, stderr *bytes.Buffer) Result {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{ExitCode: constants.TimeoutExitCode, Stderr: timeoutMessage}
	}

	out := strings.TrimSpace(stdout.String())
	errOut := strings.TrimSpace(stderr.String())

	if err == nil {
		return Result{Stdout: out, Stderr: errOut}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return Result{ExitCode: exitErr.ExitCode(), Stdout: out, Stderr: errOut}
	}

	// The process never ran (missing binary, bad work dir) or was killed
	// by a canceled parent context.
	return Result{
		ExitCode: constants.InvocationFailureExitCode,
		Stderr:   fmt.Sprintf("%s: %v", r.binary, err),
	}
}

// Compile-time interface check.
var _ Runner = (*CLIRunner)(nil)
