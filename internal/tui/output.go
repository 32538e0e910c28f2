package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	autosync "github.com/mrz1836/autosync/internal/sync"
)

// PlainReporter prints sync progress as plain lines: progress and conflicts
// to out, failures to errOut. Failures carry an "ERROR: " prefix and
// conflicts a "CONFLICT: " prefix so the text is greppable in cron mail.
type PlainReporter struct {
	out    io.Writer
	errOut io.Writer
}

// NewPlainReporter creates a PlainReporter.
func NewPlainReporter(out, errOut io.Writer) *PlainReporter {
	return &PlainReporter{out: out, errOut: errOut}
}

// Info prints a progress message.
func (r *PlainReporter) Info(msg string) {
	_, _ = fmt.Fprintln(r.out, msg)
}

// Success prints a completion message.
func (r *PlainReporter) Success(msg string) {
	_, _ = fmt.Fprintln(r.out, msg)
}

// Warning prints a recoverable failure.
func (r *PlainReporter) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Error prints a failure and its hint.
func (r *PlainReporter) Error(msg, hint string) {
	_, _ = fmt.Fprintln(r.errOut, "ERROR: "+msg)
	if hint != "" {
		_, _ = fmt.Fprintln(r.errOut, hint)
	}
}

// Conflict prints a merge conflict notice and its hint.
func (r *PlainReporter) Conflict(msg, hint string) {
	_, _ = fmt.Fprintln(r.out, "CONFLICT: "+msg)
	if hint != "" {
		_, _ = fmt.Fprintln(r.out, hint)
	}
}

// TTYReporter prints sync progress styled with Lip Gloss icons and colors.
type TTYReporter struct {
	out    io.Writer
	errOut io.Writer
	styles *OutputStyles
}

// NewTTYReporter creates a TTYReporter. Respects NO_COLOR via CheckNoColor.
func NewTTYReporter(out, errOut io.Writer) *TTYReporter {
	CheckNoColor()

	return &TTYReporter{
		out:    out,
		errOut: errOut,
		styles: NewOutputStyles(),
	}
}

// Info prints a progress message with a blue ℹ icon.
func (r *TTYReporter) Info(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Info.Render("ℹ "+msg))
}

// Success prints a completion message with a green ✓ icon.
func (r *TTYReporter) Success(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
}

// Warning prints a recoverable failure with a yellow ⚠ icon.
func (r *TTYReporter) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("⚠ "+msg))
}

// Error prints a failure with a red ✗ icon and a dim "▸ Try:" hint.
func (r *TTYReporter) Error(msg, hint string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
	if hint != "" {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Dim.Render("  ▸ Try: "+hint))
	}
}

// Conflict prints a merge conflict notice and its hint.
func (r *TTYReporter) Conflict(msg, hint string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Conflict.Render("⚠ CONFLICT: "+msg))
	if hint != "" {
		_, _ = fmt.Fprintln(r.out, r.styles.Dim.Render("  ▸ "+hint))
	}
}

// NewReporter picks the styled reporter when out is a terminal and colors
// are allowed, the plain one otherwise.
func NewReporter(out, errOut io.Writer) autosync.Reporter {
	if IsTerminal(out) && HasColorSupport() {
		return NewTTYReporter(out, errOut)
	}
	return NewPlainReporter(out, errOut)
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}

// Compile-time interface checks.
var (
	_ autosync.Reporter = (*PlainReporter)(nil)
	_ autosync.Reporter = (*TTYReporter)(nil)
)
