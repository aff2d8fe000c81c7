// Package logging wires log/slog: JSON to stdout, trace correlation and an
// optional database sink for failures.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger. Records go to out as JSON and to every
// extra handler; all of them see trace and span ids from the context.
func New(out io.Writer, level slog.Level, extra ...slog.Handler) *slog.Logger {
	handlers := append([]slog.Handler{
		slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
	}, extra...)

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = NewMultiHandler(handlers...)
	}
	return slog.New(NewTraceHandler(h))
}

// Setup installs the process logger as the slog default.
func Setup(appEnv string, extra ...slog.Handler) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	logger := New(os.Stdout, level, extra...)
	slog.SetDefault(logger)
	return logger
}
