package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/autosync/internal/errors"
)

// EnvPrefix is the prefix of environment variables read by Load.
// "fetch.max_attempts" is read from AUTOSYNC_FETCH_MAX_ATTEMPTS.
const EnvPrefix = "AUTOSYNC"

// newViperInstance creates a new Viper instance with the standard
// environment prefix, key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
//
// configFile is an explicit config file (the --config flag); empty skips it.
// An explicit file that cannot be read is an error, while a missing global
// config file is expected and skipped.
func Load(ctx context.Context, configFile string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No home directory: run on defaults, env and the explicit file.
		globalPath = ""
	}

	cfg, err := LoadFromPaths(ctx, configFile, globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("git.binary", cfg.Git.Binary).
		Dur("git.command_timeout", cfg.Git.CommandTimeout).
		Int("fetch.max_attempts", cfg.Fetch.MaxAttempts).
		Dur("fetch.initial_backoff", cfg.Fetch.InitialBackoff).
		Str("lock.dir", cfg.Lock.Dir).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
//
// explicitPath is merged over globalPath. A missing globalPath is skipped;
// a missing explicitPath is an error. Either may be empty to skip that level.
func LoadFromPaths(_ context.Context, explicitPath, globalPath string) (*Config, error) {
	v := newViperInstance()

	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			v.SetConfigFile(globalPath)
			if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
				return nil, errors.Wrapf(err, "failed to read global config: %s", globalPath)
			}
		}
	}

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file: %s", explicitPath)
		}
	}

	return unmarshalAndValidate(v)
}

// viperDecoderOption decodes duration strings such as "30s" into time.Duration.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
