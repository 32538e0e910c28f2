// Package testutil provides fakes shared by the autosync test suites:
// a scripted git runner, a manual clock and a recording reporter.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/mrz1836/autosync/internal/git"
)

// FakeRunner is a scripted git.Runner.
//
// Responses are keyed by the space-joined argument list, e.g.
// "pull --ff-only". Several responses for the same key are returned in
// order; the last one repeats once the queue is drained. Commands without
// a scripted response succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string][]git.Result
	calls     [][]string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string][]git.Result)}
}

// On queues res as a response to the command with the given args.
func (f *FakeRunner) On(res git.Result, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.Join(args, " ")
	f.responses[key] = append(f.responses[key], res)
	return f
}

// OnOK queues a successful response with the given stdout.
func (f *FakeRunner) OnOK(stdout string, args ...string) *FakeRunner {
	return f.On(git.Result{Stdout: stdout}, args...)
}

// OnFail queues a failed response with exit code 1 and the given stderr.
func (f *FakeRunner) OnFail(stderr string, args ...string) *FakeRunner {
	return f.On(git.Result{ExitCode: 1, Stderr: stderr}, args...)
}

// Run implements git.Runner.
func (f *FakeRunner) Run(_ context.Context, args ...string) git.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string(nil), args...))

	key := strings.Join(args, " ")
	queue := f.responses[key]
	switch len(queue) {
	case 0:
		return git.Result{}
	case 1:
		return queue[0]
	default:
		f.responses[key] = queue[1:]
		return queue[0]
	}
}

// Calls returns every command run so far, each as its space-joined args.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = strings.Join(c, " ")
	}
	return out
}

// CallCount returns how many times the command with args was run.
func (f *FakeRunner) CallCount(args ...string) int {
	key := strings.Join(args, " ")
	n := 0
	for _, c := range f.Calls() {
		if c == key {
			n++
		}
	}
	return n
}

// Ran reports whether the command with args was run at least once.
func (f *FakeRunner) Ran(args ...string) bool {
	return f.CallCount(args...) > 0
}

// MutatingCalls returns the commands that can change the repository or
// its remote: add, commit (or an alias invocation), fetch, pull and push.
func (f *FakeRunner) MutatingCalls() []string {
	var out []string
	for _, c := range f.Calls() {
		sub, _, _ := strings.Cut(c, " ")
		switch sub {
		case "status", "rev-list", "rev-parse", "symbolic-ref", "config":
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}

var _ git.Runner = (*FakeRunner)(nil)
