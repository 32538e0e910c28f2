// Package config provides configuration management for autosync with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (AUTOSYNC_* prefix)
//  2. Explicit config file (--config)
//  3. Global config ($AUTOSYNC_HOME/config.yaml, default ~/.autosync/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/git, internal/sync or other internal packages.
package config

import "time"

// Config is the root configuration structure for autosync.
type Config struct {
	// Git contains settings for invoking the git binary.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Fetch contains the retry schedule for fetching the upstream remote.
	Fetch FetchConfig `yaml:"fetch" mapstructure:"fetch"`

	// Commit contains settings for auto-commits of local changes.
	Commit CommitConfig `yaml:"commit" mapstructure:"commit"`

	// Lock contains settings for the per-repository session lock.
	Lock LockConfig `yaml:"lock" mapstructure:"lock"`

	// Log contains settings for the rotating log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// GitConfig contains settings for invoking git.
type GitConfig struct {
	// Binary is the git executable, looked up on PATH unless absolute.
	// Default: "git"
	Binary string `yaml:"binary" mapstructure:"binary"`

	// CommandTimeout bounds every single git invocation.
	// Default: 30s
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`
}

// FetchConfig contains the fetch retry schedule.
// The wait after failed attempt n (0-based) is
// InitialBackoff * Multiplier^n, capped at MaxBackoff.
type FetchConfig struct {
	// MaxAttempts is the total number of fetch attempts.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// InitialBackoff is the wait after the first failed attempt.
	// Default: 1s
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`

	// Multiplier is the backoff growth factor.
	// Default: 2.0
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`

	// MaxBackoff caps a single wait.
	// Default: 30s
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// CommitConfig contains settings for auto-commits.
type CommitConfig struct {
	// Alias is a git alias used instead of "commit" when the repository
	// defines it. Empty disables the lookup.
	// Default: "auto-commit"
	Alias string `yaml:"alias" mapstructure:"alias"`

	// MessagePrefix starts every auto-commit message, followed by ": " and
	// a local timestamp.
	// Default: "Auto-sync"
	MessagePrefix string `yaml:"message_prefix" mapstructure:"message_prefix"`
}

// LockConfig contains settings for the session lock file.
type LockConfig struct {
	// Dir holds the lock files. Empty means the OS temp directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Prefix starts every lock file name.
	// Default: "git-repo-auto-sync"
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// LogConfig contains settings for the log file.
type LogConfig struct {
	// FileEnabled turns the rotating log file on or off.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" mapstructure:"file_enabled"`
}
