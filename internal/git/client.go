// Package git provides Git operations for autosync.
// This file implements the Client for the mutating commands of a sync session.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/autosync/internal/ctxutil"
	syncerrors "github.com/mrz1836/autosync/internal/errors"
)

// CommandError describes a git command that exited unsuccessfully.
// It matches ErrGitOperation with errors.Is, and ErrMergeConflict too when
// the output carries conflict markers.
type CommandError struct {
	Op     string    // Short operation name, e.g. "push"
	Result Result    // Full command result
	Type   ErrorType // Classification of the failure
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	detail := e.Result.Stderr
	if detail == "" {
		detail = e.Result.Stdout
	}
	if detail == "" {
		return fmt.Sprintf("git %s failed (exit %d)", e.Op, e.Result.ExitCode)
	}
	return fmt.Sprintf("git %s failed (exit %d): %s", e.Op, e.Result.ExitCode, detail)
}

// Unwrap exposes the sentinel errors this failure matches.
func (e *CommandError) Unwrap() []error {
	if e.Type == ErrorTypeConflict {
		return []error{syncerrors.ErrGitOperation, syncerrors.ErrMergeConflict}
	}
	return []error{syncerrors.ErrGitOperation}
}

// Client issues the mutating commands of a sync session through a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a Client on top of runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// StageAll stages every change under the repository root ("git add .").
func (c *Client) StageAll(ctx context.Context) error {
	return c.run(ctx, "add", "add", ".")
}

// Commit records staged changes with message. When alias is non-empty the
// alias is invoked instead of "commit", with the same "-m <message>"
// arguments, so repository-specific commit hooks or formatting apply.
func (c *Client) Commit(ctx context.Context, alias, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message cannot be empty: %w", syncerrors.ErrEmptyValue)
	}

	subcommand := "commit"
	if alias != "" {
		subcommand = alias
	}
	return c.run(ctx, "commit", subcommand, "-m", message)
}

// Fetch downloads objects and refs from remote without merging.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	if remote == "" {
		return fmt.Errorf("remote cannot be empty: %w", syncerrors.ErrEmptyValue)
	}
	return c.run(ctx, "fetch", "fetch", remote)
}

// PullFastForward integrates upstream changes only if no merge commit is needed.
func (c *Client) PullFastForward(ctx context.Context) error {
	return c.run(ctx, "pull", "pull", "--ff-only")
}

// PullMerge integrates diverged upstream changes with a merge commit,
// never rebasing and never opening an editor. On content conflicts the
// repository is left mid-merge and the error matches ErrMergeConflict.
func (c *Client) PullMerge(ctx context.Context) error {
	return c.run(ctx, "merge", "pull", "--no-rebase", "--no-edit")
}

// Push sends local commits to the upstream of the current branch.
func (c *Client) Push(ctx context.Context) error {
	return c.run(ctx, "push", "push")
}

// run executes args and converts a failed Result into a *CommandError.
func (c *Client) run(ctx context.Context, op string, args ...string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	res := c.runner.Run(ctx, args...)
	if res.OK() {
		return nil
	}
	return &CommandError{Op: op, Result: res, Type: ClassifyResult(res)}
}
