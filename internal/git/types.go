// Package git provides Git operations for autosync.
// This file defines types produced by the Inspector.
package git

import "fmt"

// Status is a snapshot of how the local branch relates to its upstream.
// It is derived on demand and never persisted.
type Status struct {
	Ahead    int  // Local commits not on upstream
	Behind   int  // Upstream commits not local
	Diverged bool // Ahead > 0 && Behind > 0
	Clean    bool // No uncommitted changes in the working tree
}

// NewStatus builds a Status from ahead/behind counts, deriving Diverged.
// Negative counts are treated as zero.
func NewStatus(ahead, behind int, clean bool) Status {
	ahead = max(ahead, 0)
	behind = max(behind, 0)
	return Status{
		Ahead:    ahead,
		Behind:   behind,
		Diverged: ahead > 0 && behind > 0,
		Clean:    clean,
	}
}

// InSync returns true if there is nothing to pull or push.
func (s Status) InSync() bool {
	return s.Ahead == 0 && s.Behind == 0
}

// String renders the status for log messages.
func (s Status) String() string {
	return fmt.Sprintf("ahead=%d behind=%d diverged=%t clean=%t", s.Ahead, s.Behind, s.Diverged, s.Clean)
}
