// Package logging sets up the charmbracelet/log logger used across taskdex.
//
// The TUI owns the terminal, so the logger normally writes to a file under
// the data directory instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the application logger.
type Options struct {
	Level           string
	Prefix          string
	ReportTimestamp bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Prefix:          "taskdex",
		ReportTimestamp: true,
	}
}

// ParseLevel converts a level name to a log.Level, falling back to info
// for unknown or empty names.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Open creates a logger appending to the file at path, creating parent
// directories as needed. The caller closes the returned file.
func Open(path string, opts Options) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, opts), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, Options{Level: "fatal"})
}
