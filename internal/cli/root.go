// Package cli provides the command-line interface for git-repo-auto-sync.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/autosync/internal/constants"
	"github.com/mrz1836/autosync/internal/errors"
	autosync "github.com/mrz1836/autosync/internal/sync"
	"github.com/mrz1836/autosync/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// usageLine is printed on stderr for a malformed command line.
const usageLine = "Usage: " + constants.AppName + " <repo-path>"

// streams are the process output streams, swappable in tests.
type streams struct {
	out    io.Writer
	errOut io.Writer
}

// newRootCmd creates the command. The session outcome is stored in outcome
// when the command runs to completion.
func newRootCmd(flags *GlobalFlags, info BuildInfo, ios streams, outcome *autosync.Outcome) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   constants.AppName + " <repo-path>",
		Short: "Synchronize a git working copy with its upstream",
		Long: `git-repo-auto-sync reconciles one working copy with its upstream branch.

It commits local changes, fetches the upstream remote with retry, then
fast-forwards, pushes or merges as needed. Merge conflicts are left in
place for manual resolution; history is never rewritten or force-pushed.

Exit codes:
  0  success
  1  merge conflict (or invalid usage)
  2  error
  3  another sync holds the repository lock`,
		Version: formatVersion(info),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.ErrUsage
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			resolveFlags(v, flags)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runSync(cmd.Context(), flags, args[0], ios)
			if err != nil {
				return err
			}
			*outcome = result
			return nil
		},
		// Errors are reported by execute, in the same voice as sync failures.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(ios.out)
	cmd.SetErr(ios.errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errors.ErrUsage, err)
	})

	AddGlobalFlags(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the command with the process arguments and returns the
// process exit code.
func Execute(ctx context.Context, info BuildInfo) int {
	return execute(ctx, os.Args[1:], streams{out: os.Stdout, errOut: os.Stderr}, info)
}

// execute runs the command with args and maps the result to an exit code.
func execute(ctx context.Context, args []string, ios streams, info BuildInfo) int {
	flags := &GlobalFlags{}
	outcome := autosync.Success

	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, ios, &outcome)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return outcome.ExitCode()
	}

	code := ExitCodeForError(err)
	if code == ExitUsage {
		// A bare ErrUsage is a wrong argument count; anything else has detail.
		if err.Error() != errors.ErrUsage.Error() {
			_, _ = fmt.Fprintln(ios.errOut, "Error: "+err.Error())
		}
		_, _ = fmt.Fprintln(ios.errOut, usageLine)
		return ExitUsage
	}

	msg, action := errors.Actionable(err)
	tui.NewReporter(ios.out, ios.errOut).Error(msg, action)
	return code
}
