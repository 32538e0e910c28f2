package sync

import "fmt"

// Outcome is the terminal result of one sync session.
// Values are the process exit codes of the CLI.
type Outcome int

const (
	// Success means local and remote history agree after the session.
	Success Outcome = 0
	// Conflict means a merge stopped on content conflicts; the repository
	// is left mid-merge for manual resolution.
	Conflict Outcome = 1
	// Error means the session failed without reaching a consistent state.
	Error Outcome = 2
	// Locked means another session holds the repository's lock.
	Locked Outcome = 3
)

// ExitCode returns the process exit code for the outcome.
func (o Outcome) ExitCode() int {
	return int(o)
}

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Conflict:
		return "conflict"
	case Error:
		return "error"
	case Locked:
		return "locked"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Kind classifies why a phase of the session failed.
type Kind int

const (
	// KindConfiguration is a repository set up in a way sync cannot work with,
	// e.g. a branch without upstream.
	KindConfiguration Kind = iota
	// KindTransient is a failure that was retried and never recovered (fetch).
	KindTransient
	// KindMutation is a failed add, commit, pull or push.
	KindMutation
	// KindConflict is a merge that stopped on overlapping changes.
	KindConflict
	// KindUnexpected is anything the state machine does not model.
	KindUnexpected
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransient:
		return "transient"
	case KindMutation:
		return "mutation"
	case KindConflict:
		return "conflict"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome maps the kind to the session outcome.
func (k Kind) Outcome() Outcome {
	if k == KindConflict {
		return Conflict
	}
	return Error
}

// Failure is the result of a phase that could not complete.
type Failure struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String() + " failure"
	}
	return f.Kind.String() + ": " + f.Err.Error()
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}
