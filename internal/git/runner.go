// Package git provides the git operations autosync needs: a time-bounded
// command runner, a read-only repository inspector and a client for the
// handful of mutating commands a sync session issues.
// This file defines the Runner interface and its result type.
package git

import "context"

// Result is the outcome of one git invocation.
// Stdout and Stderr are trimmed of surrounding whitespace.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Output returns stderr and stdout joined, for diagnostics that should
// consider everything the command printed.
func (r Result) Output() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return r.Stderr + "\n" + r.Stdout
	}
}

// Runner executes git subcommands against one repository.
//
// Run never reports command failure as an error: a non-zero exit status,
// a timeout or a failure to start git are all described by the Result.
type Runner interface {
	Run(ctx context.Context, args ...string) Result
}
