// Package git provides Git operations for autosync.
// This file provides the repository handle and its one-time verification.
package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	syncerrors "github.com/mrz1836/autosync/internal/errors"
)

// Repository identifies a working copy by its resolved absolute path.
// It is immutable once opened.
type Repository struct {
	path string
}

// OpenRepository resolves path to an absolute, symlink-free directory and
// verifies that it holds git metadata, either a .git directory or a .git
// file pointing at a linked worktree. The check is done once, here.
func OpenRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("repository path cannot be empty: %w", syncerrors.ErrEmptyValue)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, syncerrors.ErrNotGitRepo, err)
	}

	repo, err := gogit.PlainOpenWithOptions(resolved, &gogit.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, syncerrors.ErrNotGitRepo, err)
	}

	// A bare repository has metadata but no working tree to sync.
	if _, err := repo.Worktree(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, syncerrors.ErrNotGitRepo, err)
	}

	return &Repository{path: resolved}, nil
}

// Path returns the repository's absolute path.
func (r *Repository) Path() string {
	return r.path
}

// Name returns the final path segment, used to name the session lock.
func (r *Repository) Name() string {
	return filepath.Base(r.path)
}
