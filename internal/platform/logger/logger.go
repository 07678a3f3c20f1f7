package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger on stdout with source location
// enabled. Level should be a valid slog level string: DEBUG, INFO, WARN,
// ERROR. Unrecognized values default to ERROR.
func New(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, options(level)))
}

// NewText returns a plain-text logger for terminal use, with the same level
// rules as New. The CLI logs to stderr so report output stays clean.
func NewText(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, options(level)))
}

func options(level string) *slog.HandlerOptions {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelError
	}

	return &slog.HandlerOptions{
		AddSource: true,
		Level:     lvl,
	}
}
