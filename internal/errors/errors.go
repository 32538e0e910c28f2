// Package errors provides centralized error handling for autosync.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrGitOperation indicates that a git command (add, commit, pull, push, etc.)
	// exited with a non-zero status.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNoUpstream indicates the current branch has no upstream tracking branch.
	ErrNoUpstream = errors.New("no upstream branch configured")

	// ErrFetchExhausted indicates every fetch attempt failed.
	ErrFetchExhausted = errors.New("fetch retries exhausted")

	// ErrMergeConflict indicates a merge stopped on overlapping changes
	// that need manual resolution.
	ErrMergeConflict = errors.New("merge has conflicts")

	// ErrUnexpectedState indicates an ahead/behind combination the engine
	// does not know how to reconcile.
	ErrUnexpectedState = errors.New("unexpected git state")

	// ErrUnexpectedFault indicates a panic recovered inside a sync session.
	ErrUnexpectedFault = errors.New("unexpected fault")

	// ErrAlreadyRunning indicates another sync session holds the repository lock.
	ErrAlreadyRunning = errors.New("another sync process is running")

	// ErrLockUnavailable indicates the lock file could not be opened or locked
	// for a reason other than contention.
	ErrLockUnavailable = errors.New("lock unavailable")

	// ErrUsage indicates the command line did not match the expected usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGit indicates an invalid Git configuration value.
	ErrConfigInvalidGit = errors.New("invalid Git configuration")

	// ErrConfigInvalidFetch indicates an invalid Fetch configuration value.
	ErrConfigInvalidFetch = errors.New("invalid Fetch configuration")

	// ErrConfigInvalidCommit indicates an invalid Commit configuration value.
	ErrConfigInvalidCommit = errors.New("invalid Commit configuration")

	// ErrConfigInvalidLock indicates an invalid Lock configuration value.
	ErrConfigInvalidLock = errors.New("invalid Lock configuration")
)
