// Package constants provides centralized constant values used throughout autosync.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the command name, also used for usage text and lock file names.
const AppName = "git-repo-auto-sync"

// Directory names and paths used by autosync.
const (
	// AutosyncHome is the hidden directory in the user's home where autosync
	// keeps its config and logs.
	AutosyncHome = ".autosync"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// GlobalConfigName is the name of the global configuration file.
	GlobalConfigName = "config.yaml"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "autosync.log"
)

// Log rotation settings for the CLI log file.
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
	LogCompress   = true
)

// Git defaults.
const (
	// DefaultGitBinary is the executable used for every git invocation.
	DefaultGitBinary = "git"

	// DefaultCommandTimeout bounds each git invocation.
	DefaultCommandTimeout = 30 * time.Second

	// TimeoutExitCode is reported when a git invocation hits its timeout.
	TimeoutExitCode = 124

	// InvocationFailureExitCode is reported when git could not be started at all.
	InvocationFailureExitCode = 1
)

// Fetch retry defaults. Backoff after attempt n (0-based) is
// InitialBackoff * FetchMultiplier^n: 1s, 2s, 4s.
const (
	FetchMaxAttempts = 3
	InitialBackoff   = 1 * time.Second
	FetchMultiplier  = 2.0
	MaxBackoff       = 30 * time.Second
)

// Commit defaults.
const (
	// AutoCommitAlias is the repository alias preferred over plain commit when configured.
	AutoCommitAlias = "auto-commit"

	// CommitMessagePrefix starts every automatic commit message.
	CommitMessagePrefix = "Auto-sync"

	// CommitTimestampLayout formats the commit message timestamp.
	CommitTimestampLayout = "2006-01-02 15:04:05"

	// StartTimestampLayout formats the session start message.
	StartTimestampLayout = "15:04:05"
)

// LockFilePrefix names lock files as <prefix>-<repo name>.lock.
const LockFilePrefix = AppName
