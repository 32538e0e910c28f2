package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/autosync/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files and environment
// variables override.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary:         constants.DefaultGitBinary,
			CommandTimeout: constants.DefaultCommandTimeout,
		},
		Fetch: FetchConfig{
			MaxAttempts:    constants.FetchMaxAttempts,
			InitialBackoff: constants.InitialBackoff,
			Multiplier:     constants.FetchMultiplier,
			MaxBackoff:     constants.MaxBackoff,
		},
		Commit: CommitConfig{
			Alias:         constants.AutoCommitAlias,
			MessagePrefix: constants.CommitMessagePrefix,
		},
		Lock: LockConfig{
			Dir:    "",
			Prefix: constants.LockFilePrefix,
		},
		Log: LogConfig{
			FileEnabled: true,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the mapstructure tag names exactly, and every
// key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("git.binary", d.Git.Binary)
	v.SetDefault("git.command_timeout", d.Git.CommandTimeout.String())

	v.SetDefault("fetch.max_attempts", d.Fetch.MaxAttempts)
	v.SetDefault("fetch.initial_backoff", d.Fetch.InitialBackoff.String())
	v.SetDefault("fetch.multiplier", d.Fetch.Multiplier)
	v.SetDefault("fetch.max_backoff", d.Fetch.MaxBackoff.String())

	v.SetDefault("commit.alias", d.Commit.Alias)
	v.SetDefault("commit.message_prefix", d.Commit.MessagePrefix)

	v.SetDefault("lock.dir", d.Lock.Dir)
	v.SetDefault("lock.prefix", d.Lock.Prefix)

	v.SetDefault("log.file_enabled", d.Log.FileEnabled)
}
