// Package logging builds the diagnostic logger shared by the CLI and the
// interactive shell.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel keeps diagnostics out of the interactive transcript unless
// something goes wrong.
const DefaultLevel = "warn"

// Options holds logger configuration.
type Options struct {
	Level     string // debug, info, warn, error
	Formatter string // text, json, logfmt
	Prefix    string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:     DefaultLevel,
		Formatter: "text",
		Prefix:    "tasks",
	}
}

// New creates a logger writing to w with the given options.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Formatter),
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name. Unknown names fall back to DefaultLevel.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names use text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
