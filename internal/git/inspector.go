// Package git provides Git operations for autosync.
// This file implements the read-only Inspector.
package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Inspector derives tracking configuration and divergence from a repository.
// It never mutates the repository. Failed queries degrade to "absent" or
// zero values instead of errors: no upstream is a state, not a fault.
type Inspector struct {
	runner Runner
	logger zerolog.Logger
}

// NewInspector creates an Inspector on top of runner.
func NewInspector(runner Runner, logger zerolog.Logger) *Inspector {
	return &Inspector{runner: runner, logger: logger}
}

// CurrentUpstreamBranch returns the upstream tracking ref of the current
// branch, e.g. "origin/main". Returns false on a detached HEAD or when the
// branch has no upstream configured.
func (i *Inspector) CurrentUpstreamBranch(ctx context.Context) (string, bool) {
	branch := i.runner.Run(ctx, "symbolic-ref", "--short", "HEAD")
	if !branch.OK() {
		i.logger.Debug().Str("stderr", branch.Stderr).Msg("no current branch")
		return "", false
	}

	upstream := i.runner.Run(ctx, "rev-parse", "--abbrev-ref", branch.Stdout+"@{upstream}")
	if !upstream.OK() {
		i.logger.Debug().Str("branch", branch.Stdout).Str("stderr", upstream.Stderr).Msg("no upstream for branch")
		return "", false
	}

	name := strings.TrimSpace(upstream.Stdout)
	if name == "" {
		return "", false
	}
	return name, true
}

// UpstreamRemoteName returns the remote part of the upstream ref, the text
// before the first "/". Returns false when there is no upstream or it has
// no separator.
func (i *Inspector) UpstreamRemoteName(ctx context.Context) (string, bool) {
	upstream, ok := i.CurrentUpstreamBranch(ctx)
	if !ok {
		return "", false
	}
	return RemoteFromUpstream(upstream)
}

// RemoteFromUpstream splits "remote/branch" and returns the remote.
func RemoteFromUpstream(upstream string) (string, bool) {
	remote, _, found := strings.Cut(upstream, "/")
	if !found || remote == "" {
		return "", false
	}
	return remote, true
}

// Status queries working-tree cleanliness and ahead/behind counts.
// The two are independent: when the ahead/behind comparison fails (no
// upstream) or prints something unexpected, counts default to zero while
// Clean is still reported accurately.
func (i *Inspector) Status(ctx context.Context) Status {
	porcelain := i.runner.Run(ctx, "status", "--porcelain")
	clean := porcelain.OK() && porcelain.Stdout == ""

	counts := i.runner.Run(ctx, "rev-list", "--count", "--left-right", "@{u}...HEAD")
	if !counts.OK() {
		i.logger.Debug().Str("stderr", counts.Stderr).Msg("ahead/behind comparison failed")
		return NewStatus(0, 0, clean)
	}

	behind, ahead, ok := parseLeftRight(counts.Stdout)
	if !ok {
		i.logger.Debug().Str("output", counts.Stdout).Msg("unparseable ahead/behind output")
		return NewStatus(0, 0, clean)
	}

	return NewStatus(ahead, behind, clean)
}

// AliasExists reports whether a git alias with the given name is configured
// with a non-empty value.
func (i *Inspector) AliasExists(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	res := i.runner.Run(ctx, "config", "alias."+name)
	return res.OK() && strings.TrimSpace(res.Stdout) != ""
}

// parseLeftRight parses "<left>\t<right>" as printed by
// rev-list --count --left-right. Anything else, including negative
// numbers, is rejected.
func parseLeftRight(output string) (left, right int, ok bool) {
	fields := strings.Split(strings.TrimSpace(output), "\t")
	if len(fields) != 2 {
		return 0, 0, false
	}

	left, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || left < 0 {
		return 0, 0, false
	}
	right, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || right < 0 {
		return 0, 0, false
	}
	return left, right, true
}
