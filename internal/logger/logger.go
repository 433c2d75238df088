package logger

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx/fxevent"
)

// New creates a preconfigured slog.Logger writing JSON to stdout.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// EventLogger routes fx container events through the application logger.
func EventLogger(l *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: l}
}
