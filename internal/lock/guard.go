// Package lock guards a sync session with a per-repository advisory lock.
//
// The lock file lives in a shared directory (the OS temp dir by default)
// and is named from the repository's final path segment, so any process
// syncing the same repository on this host contends for the same file.
// Its content is irrelevant; only the advisory lock state matters.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/autosync/internal/constants"
	"github.com/mrz1836/autosync/internal/ctxutil"
	syncerrors "github.com/mrz1836/autosync/internal/errors"
	"github.com/mrz1836/autosync/internal/flock"
)

const lockFilePerm = 0o600

// Guard maps repository identities to lock files in one directory.
type Guard struct {
	dir    string
	prefix string
	logger zerolog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger for lock operations.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard creates a Guard storing lock files in dir with the given name prefix.
// An empty dir means os.TempDir(); an empty prefix means constants.LockFilePrefix.
func NewGuard(dir, prefix string, opts ...Option) *Guard {
	if dir == "" {
		dir = os.TempDir()
	}
	if prefix == "" {
		prefix = constants.LockFilePrefix
	}

	g := &Guard{
		dir:    dir,
		prefix: prefix,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PathFor returns the lock file path for the repository at repoPath.
// The result is deterministic for a given path.
func (g *Guard) PathFor(repoPath string) string {
	name := safeName(filepath.Base(filepath.Clean(repoPath)))
	return filepath.Join(g.dir, fmt.Sprintf("%s-%s.lock", g.prefix, name))
}

// Acquire takes the exclusive lock for the repository at repoPath without
// waiting. If another session holds it, Acquire returns ErrAlreadyRunning
// immediately. Callers must defer Release on the returned lock.
func (g *Guard) Acquire(ctx context.Context, repoPath string) (*SessionLock, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if repoPath == "" {
		return nil, fmt.Errorf("repository path cannot be empty: %w", syncerrors.ErrEmptyValue)
	}

	path := g.PathFor(repoPath)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm) //#nosec G304 -- path is built from the configured lock dir
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w: %w", path, syncerrors.ErrLockUnavailable, err)
	}

	if err := flock.Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		if flock.IsContention(err) {
			g.logger.Debug().Str("lock_path", path).Msg("sync lock held by another session")
			return nil, fmt.Errorf("%s is locked: %w", path, syncerrors.ErrAlreadyRunning)
		}
		return nil, fmt.Errorf("failed to lock %s: %w: %w", path, syncerrors.ErrLockUnavailable, err)
	}

	g.logger.Debug().Str("lock_path", path).Msg("sync lock acquired")

	return &SessionLock{
		path:   path,
		file:   f,
		logger: g.logger,
	}, nil
}

// SessionLock is a held repository lock. It is released exactly once.
type SessionLock struct {
	path   string
	file   *os.File
	logger zerolog.Logger

	once sync.Once
	err  error
}

// Path returns the lock file path.
func (l *SessionLock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. It is safe to call more than
// once and on a nil lock; later calls return the first call's result.
func (l *SessionLock) Release() error {
	if l == nil {
		return nil
	}

	l.once.Do(func() {
		unlockErr := flock.Unlock(l.file.Fd())
		closeErr := l.file.Close()

		switch {
		case unlockErr != nil:
			l.err = fmt.Errorf("failed to unlock %s: %w", l.path, unlockErr)
		case closeErr != nil:
			l.err = fmt.Errorf("failed to close %s: %w", l.path, closeErr)
		}

		l.logger.Debug().Str("lock_path", l.path).Err(l.err).Msg("sync lock released")
	})

	return l.err
}

// safeName replaces every byte outside [A-Za-z0-9._-] with '_' so the
// repository name can be embedded in a file name on any platform.
func safeName(name string) string {
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
