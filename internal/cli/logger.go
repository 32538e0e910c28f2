package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/autosync/internal/config"
	"github.com/mrz1836/autosync/internal/constants"
	"github.com/mrz1836/autosync/internal/logging"
)

// loggerSetup holds the components needed to create a logger.
type loggerSetup struct {
	level      zerolog.Level
	hook       zerolog.Hook
	fileWriter io.WriteCloser
	console    io.Writer
}

// newLoggerSetup creates the logger components. A log file that cannot be
// opened is reported through the returned error; the setup is still usable
// for console-only logging.
func newLoggerSetup(verbose, quiet, fileEnabled bool, stderr io.Writer) (*loggerSetup, error) {
	setup := &loggerSetup{
		level:   selectLevel(verbose, quiet),
		hook:    logging.NewSensitiveDataHook(),
		console: selectOutput(stderr),
	}

	if !fileEnabled {
		return setup, nil
	}

	fileWriter, err := createLogFileWriter()
	if err != nil {
		return setup, err
	}
	setup.fileWriter = fileWriter
	return setup, nil
}

// writer returns the console writer, teed into the log file when one is open.
func (s *loggerSetup) writer() io.Writer {
	if s.fileWriter == nil {
		return s.console
	}
	return zerolog.MultiLevelWriter(s.console, s.fileWriter)
}

// close closes the log file, if any.
func (s *loggerSetup) close() {
	if s.fileWriter != nil {
		_ = s.fileWriter.Close()
		s.fileWriter = nil
	}
}

// buildLogger creates a zerolog.Logger from the setup.
func buildLogger(setup *loggerSetup) zerolog.Logger {
	return zerolog.New(setup.writer()).Level(setup.level).Hook(setup.hook).With().Timestamp().Logger()
}

// InitLoggerWithWriter creates a logger writing to w only, with the same
// redaction as the console and file outputs.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	return zerolog.New(logging.NewFilteringWriter(w)).
		Level(selectLevel(verbose, quiet)).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks a human-friendly console writer when stderr is a
// terminal and colors are allowed, plain JSON lines otherwise. Both are
// redacted.
func selectOutput(stderr io.Writer) io.Writer {
	filtered := logging.NewFilteringWriter(stderr)

	if f, ok := stderr.(*os.File); ok {
		//nolint:gosec // G115: file descriptors fit in int
		if term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
			return zerolog.ConsoleWriter{
				Out:        filtered,
				TimeFormat: time.Kitchen,
			}
		}
	}

	return filtered
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the log file,
// wrapped so credentials echoed by git never reach disk.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := config.LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}
