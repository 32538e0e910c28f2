// Package sync reconciles a working copy with its upstream.
//
// A session runs a fixed protocol: commit local changes, fetch the upstream
// remote with retry, classify how local and remote history relate and then
// fast-forward, push or merge accordingly. Every phase either completes or
// returns a *Failure; Sync turns the first failure into an Outcome.
//
// The engine never resolves conflicts, never rewrites history and never
// force-pushes. Mutual exclusion between sessions is the caller's job
// (see package lock).
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/autosync/internal/clock"
	"github.com/mrz1836/autosync/internal/constants"
	"github.com/mrz1836/autosync/internal/ctxutil"
	syncerrors "github.com/mrz1836/autosync/internal/errors"
	"github.com/mrz1836/autosync/internal/git"
)

// Settings holds the tunable parts of a session.
type Settings struct {
	// CommitAlias is a git alias preferred over "commit" when it exists.
	// Empty disables the lookup.
	CommitAlias string
	// MessagePrefix starts every auto-commit message.
	MessagePrefix string
	// Fetch is the retry schedule for fetching the upstream remote.
	Fetch git.RetryConfig
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		CommitAlias:   constants.AutoCommitAlias,
		MessagePrefix: constants.CommitMessagePrefix,
		Fetch:         git.DefaultRetryConfig(),
	}
}

// Engine runs sync sessions against one repository.
type Engine struct {
	inspector *git.Inspector
	client    *git.Client
	settings  Settings
	clock     clock.Clock
	reporter  Reporter
	logger    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for phase tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the clock used for timestamps and fetch backoff.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithReporter sets where progress messages go.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// NewEngine creates an Engine issuing all git commands through runner.
func NewEngine(runner git.Runner, opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		clock:    clock.RealClock{},
		reporter: nopReporter{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.inspector = git.NewInspector(runner, e.logger)
	e.client = git.NewClient(runner)
	return e
}

// Sync runs one session and returns its outcome. It never panics: a fault
// inside the session is reported and mapped to Error.
func (e *Engine) Sync(ctx context.Context) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Err(fmt.Errorf("%w: %v", syncerrors.ErrUnexpectedFault, r)).Msg("sync session panicked")
			e.reporter.Error(fmt.Sprintf("Unexpected error: %v", r), "")
			outcome = Error
		}
	}()

	if err := ctxutil.Canceled(ctx); err != nil {
		e.reporter.Error(fmt.Sprintf("Unexpected error: %v", err), "")
		return Error
	}

	e.reporter.Info("Starting sync at " + e.clock.Now().Format(constants.StartTimestampLayout))

	outcome, failure := e.run(ctx)
	if failure != nil {
		outcome = failure.Kind.Outcome()
		e.logger.Warn().
			Err(failure.Err).
			Str("kind", failure.Kind.String()).
			Str("error_type", errorType(failure.Err)).
			Str("outcome", outcome.String()).
			Msg("sync session failed")
		return outcome
	}

	e.logger.Info().Str("outcome", outcome.String()).Msg("sync session finished")
	return outcome
}

// run executes the phases in order, stopping at the first failure.
func (e *Engine) run(ctx context.Context) (Outcome, *Failure) {
	remote, failure := e.preflight(ctx)
	if failure != nil {
		return Error, failure
	}

	if failure := e.commitLocalChanges(ctx); failure != nil {
		return Error, failure
	}

	if failure := e.fetch(ctx, remote); failure != nil {
		return Error, failure
	}

	status := e.inspector.Status(ctx)
	e.logger.Debug().Stringer("status", status).Msg("classified repository")

	return e.reconcile(ctx, status)
}

// preflight requires an upstream branch and derives its remote.
func (e *Engine) preflight(ctx context.Context) (string, *Failure) {
	upstream, ok := e.inspector.CurrentUpstreamBranch(ctx)
	if !ok {
		return "", e.noUpstream()
	}

	remote, ok := git.RemoteFromUpstream(upstream)
	if !ok {
		return "", e.noUpstream()
	}

	e.logger.Debug().Str("upstream", upstream).Str("remote", remote).Msg("resolved upstream")
	return remote, nil
}

func (e *Engine) noUpstream() *Failure {
	msg, action := syncerrors.Actionable(syncerrors.ErrNoUpstream)
	e.reporter.Error(msg, action)
	return fail(KindConfiguration, syncerrors.ErrNoUpstream)
}

// commitLocalChanges stages and commits everything when the working tree
// is dirty. A clean tree issues no add or commit.
func (e *Engine) commitLocalChanges(ctx context.Context) *Failure {
	if e.inspector.Status(ctx).Clean {
		return nil
	}

	if err := e.client.StageAll(ctx); err != nil {
		e.reporter.Error("git add failed: "+failureText(err), "")
		return fail(KindMutation, err)
	}

	alias := ""
	if e.settings.CommitAlias != "" && e.inspector.AliasExists(ctx, e.settings.CommitAlias) {
		alias = e.settings.CommitAlias
	}

	message := e.settings.MessagePrefix + ": " + e.clock.Now().Format(constants.CommitTimestampLayout)
	if err := e.client.Commit(ctx, alias, message); err != nil {
		e.reporter.Error("git commit failed: "+failureText(err), "")
		return fail(KindMutation, err)
	}

	e.logger.Info().Str("alias", alias).Str("message", message).Msg("committed local changes")
	return nil
}

// fetch downloads the upstream remote, retrying with backoff.
func (e *Engine) fetch(ctx context.Context, remote string) *Failure {
	op := &git.SimpleRetryOperation[struct{}]{
		AttemptFunc: func(ctx context.Context, _ int) (struct{}, bool, error) {
			err := e.client.Fetch(ctx, remote)
			return struct{}{}, err == nil, err
		},
		OnRetryWaitFunc: func(attempt int, delay time.Duration, err error) {
			e.reporter.Warning(fmt.Sprintf("Fetch attempt %d failed: %s", attempt, failureText(err)))
			e.logger.Debug().
				Int("attempt", attempt).
				Dur("backoff", delay).
				Str("error_type", errorType(err)).
				Msg("fetch failed, backing off")
		},
	}

	_, attempts, err := git.ExecuteWithRetry(ctx, e.settings.Fetch, e.clock, op)
	if err != nil {
		e.reporter.Error(fmt.Sprintf("Fetch failed after %d attempts", attempts), "")
		return fail(KindTransient, fmt.Errorf("%w: %w", syncerrors.ErrFetchExhausted, err))
	}

	e.logger.Debug().Str("remote", remote).Int("attempts", attempts).Msg("fetched upstream")
	return nil
}

// reconcile acts on the relationship between local and upstream history.
func (e *Engine) reconcile(ctx context.Context, s git.Status) (Outcome, *Failure) {
	switch {
	case s.InSync():
		e.reporter.Info("Already up to date")
		return Success, nil

	case s.Behind > 0 && s.Ahead == 0:
		e.reporter.Info(fmt.Sprintf("Behind by %d commits, fast-forwarding...", s.Behind))
		if err := e.client.PullFastForward(ctx); err != nil {
			e.reporter.Error("Fast-forward failed: "+failureText(err), "")
			return Error, fail(KindMutation, err)
		}
		e.reporter.Success("Successfully pulled changes")
		return Success, nil

	case s.Ahead > 0 && s.Behind == 0:
		e.reporter.Info(fmt.Sprintf("Ahead by %d commits, pushing...", s.Ahead))
		if err := e.client.Push(ctx); err != nil {
			e.reporter.Error("Push failed: "+failureText(err), "")
			return Error, fail(KindMutation, err)
		}
		e.reporter.Success("Successfully pushed changes")
		return Success, nil

	case s.Diverged:
		return e.merge(ctx, s)

	default:
		e.reporter.Error("Unexpected git state", "")
		return Error, fail(KindUnexpected, fmt.Errorf("%w: %s", syncerrors.ErrUnexpectedState, s))
	}
}

// merge integrates diverged histories and pushes the merge. A conflicted
// merge is left in place and nothing is pushed.
func (e *Engine) merge(ctx context.Context, s git.Status) (Outcome, *Failure) {
	e.reporter.Info(fmt.Sprintf("Diverged (ahead %d, behind %d), merging...", s.Ahead, s.Behind))

	if err := e.client.PullMerge(ctx); err != nil {
		if errors.Is(err, syncerrors.ErrMergeConflict) {
			msg, action := syncerrors.Actionable(syncerrors.ErrMergeConflict)
			e.reporter.Conflict(msg, action)
			return Conflict, fail(KindConflict, err)
		}
		e.reporter.Error("Merge failed: "+failureText(err), "")
		return Error, fail(KindMutation, err)
	}

	if err := e.client.Push(ctx); err != nil {
		e.reporter.Error("Push after merge failed: "+failureText(err), "")
		return Error, fail(KindMutation, err)
	}

	e.reporter.Success("Successfully merged and pushed")
	return Success, nil
}

// failureText returns what git printed on stderr for a failed command, or
// the error text for anything else.
func failureText(err error) string {
	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Result.Stderr
	}
	return err.Error()
}

// errorType names the classification of a failed git command, or "none"
// when err did not come from one.
func errorType(err error) string {
	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Type.String()
	}
	return "none"
}
