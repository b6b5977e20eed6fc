// Package logging builds the diagnostics logger shared by all components.
//
// Warnings are always shown. Verbose output maps to the info level and debug
// output to the debug level, mirroring the -v/-vv flags of the CLI.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

const prefix = "fixtures"

// New creates a logger writing to w. verbosity 0 shows warnings, 1 adds
// info messages and 2 or more adds debug messages.
func New(w io.Writer, verbosity int) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  LevelFor(verbosity),
	})
}

// LevelFor maps a -v count to a log level.
func LevelFor(verbosity int) log.Level {
	switch {
	case verbosity >= 2:
		return log.DebugLevel
	case verbosity == 1:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
