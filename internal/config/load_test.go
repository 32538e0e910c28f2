package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/autosync/internal/errors"
)

// isolateEnv points AUTOSYNC_HOME at an empty directory and blanks any
// AUTOSYNC_* variables inherited from the developer's shell.
func isolateEnv(t *testing.T) string {
	t.Helper()

	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			t.Setenv(key, "")
		}
	}

	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_GlobalConfig(t *testing.T) {
	home := isolateEnv(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), `
git:
  command_timeout: 45s
fetch:
  max_attempts: 5
  initial_backoff: 500ms
commit:
  message_prefix: Notes sync
`)

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Git.CommandTimeout)
	assert.Equal(t, 5, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.InitialBackoff)
	assert.Equal(t, "Notes sync", cfg.Commit.MessagePrefix)
	assert.Equal(t, "git", cfg.Git.Binary, "unset keys keep defaults")
}

func TestLoad_ExplicitFileOverridesGlobal(t *testing.T) {
	home := isolateEnv(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), `
commit:
  alias: global-alias
  message_prefix: Global
`)
	explicit := filepath.Join(t.TempDir(), "autosync.yaml")
	writeConfig(t, explicit, `
commit:
  message_prefix: Explicit
lock:
  dir: /var/lock/autosync
`)

	cfg, err := Load(context.Background(), explicit)
	require.NoError(t, err)

	assert.Equal(t, "Explicit", cfg.Commit.MessagePrefix)
	assert.Equal(t, "global-alias", cfg.Commit.Alias, "global values survive the merge")
	assert.Equal(t, "/var/lock/autosync", cfg.Lock.Dir)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolateEnv(t)
	explicit := filepath.Join(t.TempDir(), "autosync.yaml")
	writeConfig(t, explicit, `
fetch:
  max_attempts: 4
log:
  file_enabled: true
`)
	t.Setenv("AUTOSYNC_FETCH_MAX_ATTEMPTS", "7")
	t.Setenv("AUTOSYNC_FETCH_MULTIPLIER", "1.5")
	t.Setenv("AUTOSYNC_GIT_COMMAND_TIMEOUT", "2m")
	t.Setenv("AUTOSYNC_LOG_FILE_ENABLED", "false")

	cfg, err := Load(context.Background(), explicit)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Fetch.MaxAttempts)
	assert.InDelta(t, 1.5, cfg.Fetch.Multiplier, 0.0001)
	assert.Equal(t, 2*time.Minute, cfg.Git.CommandTimeout)
	assert.False(t, cfg.Log.FileEnabled)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateEnv(t)

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateEnv(t)
	explicit := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, explicit, "fetch: [unclosed")

	_, err := Load(context.Background(), explicit)
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AUTOSYNC_FETCH_MAX_ATTEMPTS", "0")

	_, err := Load(context.Background(), "")
	require.ErrorIs(t, err, errors.ErrConfigInvalidFetch)
}

func TestLoad_BadDuration(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AUTOSYNC_GIT_COMMAND_TIMEOUT", "soon")

	_, err := Load(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadFromPaths_SkipsMissingGlobal(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadFromPaths(context.Background(), "", filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
