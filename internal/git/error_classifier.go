// Package git provides Git operations for autosync.
// This file classifies failed git commands from their output text.
package git

import "strings"

// ErrorType represents the classification of a failed git command.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the error could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConflict indicates a merge stopped on content conflicts.
	ErrorTypeConflict
	// ErrorTypeAuth indicates an authentication error.
	ErrorTypeAuth
	// ErrorTypeNetwork indicates a network connectivity error.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the command hit the runner timeout.
	ErrorTypeTimeout
	// ErrorTypeNonFastForward indicates history that cannot be fast-forwarded.
	ErrorTypeNonFastForward
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeConflict:
		return "conflict"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeNonFastForward:
		return "non_fast_forward"
	default:
		return "unknown"
	}
}

// PatternMatcher checks if a string contains any of a list of patterns.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with the given patterns.
// Patterns should be lowercase for use with Matches.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches returns true if the lowercased input contains any of the patterns.
func (m *PatternMatcher) Matches(s string) bool {
	return m.MatchesExact(strings.ToLower(s))
}

// MatchesExact returns true if the input contains any pattern, case-sensitively.
func (m *PatternMatcher) MatchesExact(s string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	// conflictMarkers is matched case-sensitively on purpose: only the two
	// spellings git uses ("CONFLICT (content): ..." and "fix conflicts")
	// count. This depends on git's English messages; under a translated
	// locale a real conflict is reported as a plain merge failure.
	conflictMarkers = NewPatternMatcher("CONFLICT", "conflict")

	authPatterns = NewPatternMatcher(
		"authentication failed",
		"could not read username",
		"could not read password",
		"permission denied",
		"access denied",
		"terminal prompts disabled",
	)

	networkPatterns = NewPatternMatcher(
		"could not resolve host",
		"connection refused",
		"network is unreachable",
		"connection timed out",
		"unable to access",
		"no route to host",
		"could not read from remote repository",
	)

	nonFastForwardPatterns = NewPatternMatcher(
		"non-fast-forward",
		"not possible to fast-forward",
		"updates were rejected",
		"fetch first",
	)
)

// IsMergeConflict reports whether the output of a failed merge indicates
// overlapping changes. Both streams are checked because git prints the
// CONFLICT lines on stdout and the summary on stderr.
func IsMergeConflict(r Result) bool {
	return conflictMarkers.MatchesExact(r.Stderr) || conflictMarkers.MatchesExact(r.Stdout)
}

// ClassifyResult determines the error type of a failed command.
// Returns ErrorTypeUnknown for successful results.
//
// Priority (first match wins): timeout, conflict, auth, network, non-fast-forward.
func ClassifyResult(r Result) ErrorType {
	if r.OK() {
		return ErrorTypeUnknown
	}
	if r.ExitCode == timeoutExitCode && r.Stderr == timeoutMessage {
		return ErrorTypeTimeout
	}
	if IsMergeConflict(r) {
		return ErrorTypeConflict
	}

	output := r.Output()
	switch {
	case authPatterns.Matches(output):
		return ErrorTypeAuth
	case networkPatterns.Matches(output):
		return ErrorTypeNetwork
	case nonFastForwardPatterns.Matches(output):
		return ErrorTypeNonFastForward
	default:
		return ErrorTypeUnknown
	}
}
