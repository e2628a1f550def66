package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file, creating its directory
func NewFileLogger(path string) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return New(f), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// WithRun tags every entry with a publish run id
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.With("run", runID)}
}

// ConversionCompleted logs a finished markdown conversion
func (l *Logger) ConversionCompleted(file, title string, blocks, words int) {
	l.Info("conversion completed",
		"file", file,
		"title", title,
		"blocks", blocks,
		"words", words)
}

// DraftCreated logs a successfully created draft
func (l *Logger) DraftCreated(file string, draftID int64, url string, duration time.Duration) {
	l.Info("draft created",
		"file", file,
		"draft_id", draftID,
		"url", url,
		"duration", duration.Round(time.Millisecond))
}

// DraftSkipped logs when a file is not drafted again
func (l *Logger) DraftSkipped(file, reason string) {
	l.Debug("draft skipped",
		"file", file,
		"reason", reason)
}

// AuthChecked logs the outcome of an authentication attempt
func (l *Logger) AuthChecked(method string, userID int64, err error) {
	if err != nil {
		l.Warn("authentication failed",
			"method", method,
			"error", err)
		return
	}
	l.Info("authenticated",
		"method", method,
		"user_id", userID)
}

// PublishFailed logs a failed draft creation
func (l *Logger) PublishFailed(file string, err error) {
	l.Error("publish failed",
		"file", file,
		"error", err)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, audience string) {
	l.Debug("config loaded",
		"path", path,
		"audience", audience)
}
