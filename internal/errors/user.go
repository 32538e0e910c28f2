package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map because lookups go through errors.Is().
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrNoUpstream,
		info: ErrorInfo{
			Message: "No upstream branch configured for current branch",
			Action:  "Run: git branch --set-upstream-to=<remote>/<branch>",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "Not a git repository",
			Action:  "Pass the path of a working copy that contains a .git directory.",
		},
	},
	{
		err: ErrAlreadyRunning,
		info: ErrorInfo{
			Message: "Another sync process is running",
		},
	},
	{
		err: ErrLockUnavailable,
		info: ErrorInfo{
			Message: "Could not open the sync lock file",
			Action:  "Check that the lock directory exists and is writable.",
		},
	},
	{
		err: ErrMergeConflict,
		info: ErrorInfo{
			Message: "Manual resolution required",
			Action:  "Repository is in merge state - resolve conflicts and commit",
		},
	},
	{
		err: ErrFetchExhausted,
		info: ErrorInfo{
			Message: "Could not fetch from the upstream remote",
			Action:  "Check your network connection and remote credentials.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is missing",
		},
	},
	{
		err: ErrConfigInvalidGit,
		info: ErrorInfo{
			Message: "Invalid git configuration",
			Action:  "Check the git section of ~/.autosync/config.yaml or AUTOSYNC_GIT_* variables.",
		},
	},
	{
		err: ErrConfigInvalidFetch,
		info: ErrorInfo{
			Message: "Invalid fetch configuration",
			Action:  "Check the fetch section of ~/.autosync/config.yaml or AUTOSYNC_FETCH_* variables.",
		},
	},
	{
		err: ErrConfigInvalidCommit,
		info: ErrorInfo{
			Message: "Invalid commit configuration",
			Action:  "Check the commit section of ~/.autosync/config.yaml or AUTOSYNC_COMMIT_* variables.",
		},
	},
	{
		err: ErrConfigInvalidLock,
		info: ErrorInfo{
			Message: "Invalid lock configuration",
			Action:  "Check the lock section of ~/.autosync/config.yaml or AUTOSYNC_LOCK_* variables.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error, following wrapped
// chains. Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue. The action is empty when
// there is nothing the user can do.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
