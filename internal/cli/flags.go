package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/autosync/internal/errors"
)

// Exit codes for the CLI. Session outcomes map 1:1 onto their exit codes;
// usage errors share code 1 with Conflict.
const (
	// ExitSuccess indicates a completed sync.
	ExitSuccess = 0
	// ExitConflict indicates a merge left for manual resolution.
	ExitConflict = 1
	// ExitError indicates a failed sync or an invalid environment.
	ExitError = 2
	// ExitLocked indicates another sync holds the repository lock.
	ExitLocked = 3
	// ExitUsage indicates a malformed command line.
	ExitUsage = 1
)

// GlobalFlags holds the command's flags.
type GlobalFlags struct {
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet limits logging to warnings and errors.
	Quiet bool
	// ConfigFile is an explicit config file merged over the global one.
	ConfigFile string
}

// AddGlobalFlags adds the flags to cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (merged over ~/.autosync/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds the flags to Viper so AUTOSYNC_VERBOSE,
// AUTOSYNC_QUIET and AUTOSYNC_CONFIG work as well. Flags given on the
// command line win.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"verbose", "quiet", "config"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("AUTOSYNC")
	v.AutomaticEnv()

	return nil
}

// resolveFlags reads the effective flag values from v into flags.
func resolveFlags(v *viper.Viper, flags *GlobalFlags) {
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
	flags.ConfigFile = v.GetString("config")
	if flags.Verbose && flags.Quiet {
		// Both only via the environment; the more talkative one wins.
		flags.Quiet = false
	}
}

// ExitCodeForError maps an error returned by the command to an exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if stderrors.Is(err, errors.ErrUsage) || isInvalidInputError(err.Error()) {
		return ExitUsage
	}

	if stderrors.Is(err, errors.ErrAlreadyRunning) {
		return ExitLocked
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
