// Package logger builds the structured logger shared by the service and CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text logger writing to stdout at the given level
func New(level string) *slog.Logger {
	return NewWithFormat(level, "text")
}

// NewWithFormat returns a logger with a "json" or "text" handler
func NewWithFormat(level, format string) *slog.Logger {
	return NewWriter(os.Stdout, level, format)
}

// NewWriter returns a logger writing to w
func NewWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
