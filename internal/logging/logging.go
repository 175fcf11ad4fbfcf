// Package logging installs the process-wide slog handler.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix tags every line liz writes to the terminal.
const Prefix = "liz"

// New returns a slog logger backed by a charmbracelet/log handler writing to w.
// verbose lowers the level from Info to Debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

// Setup builds a logger with New and makes it the slog default.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}
