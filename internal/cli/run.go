package cli

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/autosync/internal/clock"
	"github.com/mrz1836/autosync/internal/config"
	"github.com/mrz1836/autosync/internal/errors"
	"github.com/mrz1836/autosync/internal/git"
	"github.com/mrz1836/autosync/internal/lock"
	autosync "github.com/mrz1836/autosync/internal/sync"
	"github.com/mrz1836/autosync/internal/tui"
)

// runSync runs one sync session against the repository at repoPath.
// Errors returned are boundary failures (bad path, invalid config, lock
// file trouble); everything inside the session is reported through the
// reporter and folded into the outcome.
func runSync(ctx context.Context, flags *GlobalFlags, repoPath string, ios streams) (autosync.Outcome, error) {
	reporter := tui.NewReporter(ios.out, ios.errOut)

	cfg, err := config.Load(ctx, flags.ConfigFile)
	if err != nil {
		return autosync.Error, err
	}

	setup, logErr := newLoggerSetup(flags.Verbose, flags.Quiet, cfg.Log.FileEnabled, ios.errOut)
	defer setup.close()
	logger := buildLogger(setup)
	if logErr != nil {
		logger.Warn().Err(logErr).Msg("log file unavailable, logging to console only")
	}

	repo, err := git.OpenRepository(repoPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", repoPath).Msg("repository check failed")
		return autosync.Error, err
	}

	logger = logger.With().
		Str("session_id", uuid.NewString()).
		Str("repo", repo.Path()).
		Logger()

	guard := lock.NewGuard(cfg.Lock.Dir, cfg.Lock.Prefix, lock.WithLogger(logger))
	session, err := guard.Acquire(ctx, repo.Path())
	if err != nil {
		if stderrors.Is(err, errors.ErrAlreadyRunning) {
			msg, _ := errors.Actionable(err)
			reporter.Error(msg, "")
			logger.Info().Str("lock_path", guard.PathFor(repo.Path())).Msg("skipping sync, lock held")
			return autosync.Locked, nil
		}
		return autosync.Error, err
	}
	defer func() {
		if err := session.Release(); err != nil {
			logger.Warn().Err(err).Str("lock_path", session.Path()).Msg("failed to release sync lock")
		}
	}()

	engine := newEngine(cfg, repo, reporter, logger)
	outcome := engine.Sync(ctx)

	logger.Debug().Str("outcome", outcome.String()).Int("exit_code", outcome.ExitCode()).Msg("session complete")
	return outcome, nil
}

// newEngine wires a sync engine for repo from the loaded configuration.
func newEngine(cfg *config.Config, repo *git.Repository, reporter autosync.Reporter, logger zerolog.Logger) *autosync.Engine {
	runner := git.NewCLIRunner(repo.Path(),
		git.WithBinary(cfg.Git.Binary),
		git.WithTimeout(cfg.Git.CommandTimeout),
		git.WithRunnerLogger(logger),
	)

	settings := autosync.Settings{
		CommitAlias:   cfg.Commit.Alias,
		MessagePrefix: cfg.Commit.MessagePrefix,
		Fetch: git.RetryConfig{
			MaxAttempts:  cfg.Fetch.MaxAttempts,
			InitialDelay: cfg.Fetch.InitialBackoff,
			MaxDelay:     cfg.Fetch.MaxBackoff,
			Multiplier:   cfg.Fetch.Multiplier,
		},
	}

	return autosync.NewEngine(runner,
		autosync.WithSettings(settings),
		autosync.WithReporter(reporter),
		autosync.WithClock(clock.RealClock{}),
		autosync.WithLogger(logger),
	)
}
