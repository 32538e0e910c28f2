package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/autosync/internal/errors"
	autosync "github.com/mrz1836/autosync/internal/sync"
)

func TestExitCodes_MatchOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    int
		outcome autosync.Outcome
	}{
		{"success", ExitSuccess, autosync.Success},
		{"conflict", ExitConflict, autosync.Conflict},
		{"error", ExitError, autosync.Error},
		{"locked", ExitLocked, autosync.Locked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.outcome.ExitCode(), tc.code)
		})
	}

	assert.Equal(t, 1, ExitUsage)
}

func TestAddGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	quiet := cmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, quiet)
	assert.Equal(t, "q", quiet.Shorthand)

	config := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Empty(t, config.Shorthand)
	assert.Empty(t, config.DefValue)
}

func TestAddGlobalFlags_ParsesValues(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)
	cmd.SetArgs([]string{"-v", "--config", "/tmp/sync.yaml"})

	require.NoError(t, cmd.Execute())
	assert.True(t, flags.Verbose)
	assert.False(t, flags.Quiet)
	assert.Equal(t, "/tmp/sync.yaml", flags.ConfigFile)
}

func TestAddGlobalFlags_VerboseAndQuietExclusive(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AddGlobalFlags(cmd, &GlobalFlags{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"-v", "-q"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCodeForError(err))
}

func TestBindGlobalFlags(t *testing.T) {
	t.Parallel()

	v := viper.New()
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)
	require.NoError(t, cmd.PersistentFlags().Set("quiet", "true"))
	require.NoError(t, cmd.PersistentFlags().Set("config", "custom.yaml"))

	require.NoError(t, BindGlobalFlags(v, cmd))
	resolveFlags(v, flags)

	assert.False(t, flags.Verbose)
	assert.True(t, flags.Quiet)
	assert.Equal(t, "custom.yaml", flags.ConfigFile)
}

func TestBindGlobalFlags_Environment(t *testing.T) {
	t.Setenv("AUTOSYNC_VERBOSE", "true")
	t.Setenv("AUTOSYNC_CONFIG", "/etc/autosync.yaml")

	v := viper.New()
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)

	require.NoError(t, BindGlobalFlags(v, cmd))
	resolveFlags(v, flags)

	assert.True(t, flags.Verbose)
	assert.Equal(t, "/etc/autosync.yaml", flags.ConfigFile)
}

func TestResolveFlags_VerboseWinsOverQuiet(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("verbose", true)
	v.Set("quiet", true)

	flags := &GlobalFlags{}
	resolveFlags(v, flags)

	assert.True(t, flags.Verbose)
	assert.False(t, flags.Quiet)
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", errors.ErrUsage, ExitUsage},
		{"wrapped usage", fmt.Errorf("%w: unknown flag: --nope", errors.ErrUsage), ExitUsage},
		{"cobra unknown flag", stderrors.New("unknown flag: --nope"), ExitUsage},
		{"cobra missing flag value", stderrors.New("flag needs an argument: --config"), ExitUsage},
		{"lock held", fmt.Errorf("/tmp/x.lock is locked: %w", errors.ErrAlreadyRunning), ExitLocked},
		{"not a repo", fmt.Errorf("/tmp: %w", errors.ErrNotGitRepo), ExitError},
		{"invalid config", fmt.Errorf("%w: bad", errors.ErrConfigInvalidFetch), ExitError},
		{"lock file unavailable", errors.ErrLockUnavailable, ExitError},
		{"anything else", stderrors.New("boom"), ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ExitCodeForError(tc.err))
		})
	}
}
