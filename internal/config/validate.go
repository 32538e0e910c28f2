package config

import (
	"strings"

	"github.com/mrz1836/autosync/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - git binary must not be empty and the command timeout must be positive
//   - fetch attempts and backoffs must be positive, multiplier at least 1,
//     and the initial backoff no larger than the cap
//   - commit message prefix must not be empty
//   - lock prefix must not be empty or contain path separators
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateGitConfig(&cfg.Git); err != nil {
		return err
	}

	if err := validateFetchConfig(&cfg.Fetch); err != nil {
		return err
	}

	if err := validateCommitConfig(&cfg.Commit); err != nil {
		return err
	}

	return validateLockConfig(&cfg.Lock)
}

// validateGitConfig checks git invocation settings.
func validateGitConfig(cfg *GitConfig) error {
	if strings.TrimSpace(cfg.Binary) == "" {
		return errors.Wrap(errors.ErrConfigInvalidGit, "git.binary must not be empty")
	}

	if cfg.CommandTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGit,
			"git.command_timeout must be positive, got %s", cfg.CommandTimeout)
	}

	return nil
}

// validateFetchConfig checks the fetch retry schedule.
func validateFetchConfig(cfg *FetchConfig) error {
	if cfg.MaxAttempts < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidFetch,
			"fetch.max_attempts must be at least 1, got %d", cfg.MaxAttempts)
	}

	if cfg.InitialBackoff <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidFetch,
			"fetch.initial_backoff must be positive, got %s", cfg.InitialBackoff)
	}

	if cfg.MaxBackoff < cfg.InitialBackoff {
		return errors.Wrapf(errors.ErrConfigInvalidFetch,
			"fetch.max_backoff (%s) must not be less than fetch.initial_backoff (%s)",
			cfg.MaxBackoff, cfg.InitialBackoff)
	}

	if cfg.Multiplier < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidFetch,
			"fetch.multiplier must be at least 1, got %g", cfg.Multiplier)
	}

	return nil
}

// validateCommitConfig checks auto-commit settings.
func validateCommitConfig(cfg *CommitConfig) error {
	if strings.TrimSpace(cfg.MessagePrefix) == "" {
		return errors.Wrap(errors.ErrConfigInvalidCommit, "commit.message_prefix must not be empty")
	}

	if strings.ContainsAny(cfg.Alias, " \t\n") {
		return errors.Wrapf(errors.ErrConfigInvalidCommit,
			"commit.alias must be a single git alias name, got %q", cfg.Alias)
	}

	return nil
}

// validateLockConfig checks lock file settings.
func validateLockConfig(cfg *LockConfig) error {
	if cfg.Prefix == "" {
		return errors.Wrap(errors.ErrConfigInvalidLock, "lock.prefix must not be empty")
	}

	if strings.ContainsAny(cfg.Prefix, `/\`) {
		return errors.Wrapf(errors.ErrConfigInvalidLock,
			"lock.prefix must not contain path separators, got %q", cfg.Prefix)
	}

	return nil
}
