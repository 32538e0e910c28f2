package testutil

import "sync"

// Stream identifies where a reported message would be printed.
type Stream string

// Output streams.
const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// Report is one message received by a RecordingReporter.
type Report struct {
	Level  string // info, success, warning, error or conflict
	Stream Stream
	Msg    string
	Hint   string
}

// RecordingReporter records progress messages instead of printing them.
// It satisfies the engine's Reporter interface.
type RecordingReporter struct {
	mu      sync.Mutex
	reports []Report
}

// NewRecordingReporter creates an empty RecordingReporter.
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

func (r *RecordingReporter) record(level string, stream Stream, msg, hint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Level: level, Stream: stream, Msg: msg, Hint: hint})
}

// Info records a progress message.
func (r *RecordingReporter) Info(msg string) { r.record("info", Stdout, msg, "") }

// Success records a completion message.
func (r *RecordingReporter) Success(msg string) { r.record("success", Stdout, msg, "") }

// Warning records a recoverable failure.
func (r *RecordingReporter) Warning(msg string) { r.record("warning", Stderr, msg, "") }

// Error records a failure.
func (r *RecordingReporter) Error(msg, hint string) { r.record("error", Stderr, msg, hint) }

// Conflict records a merge conflict notice.
func (r *RecordingReporter) Conflict(msg, hint string) { r.record("conflict", Stdout, msg, hint) }

// Reports returns every recorded message in order.
func (r *RecordingReporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.reports...)
}

// Messages returns the text of every message sent to stream.
func (r *RecordingReporter) Messages(stream Stream) []string {
	var out []string
	for _, rep := range r.Reports() {
		if rep.Stream == stream {
			out = append(out, rep.Msg)
		}
	}
	return out
}

// Levels returns the level of every recorded message in order.
func (r *RecordingReporter) Levels() []string {
	reports := r.Reports()
	out := make([]string, len(reports))
	for i, rep := range reports {
		out[i] = rep.Level
	}
	return out
}
