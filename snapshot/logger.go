package snapshot

import (
	"context"
	"io"
	"log/slog"
	"os"

	"code.cloudfoundry.org/bytefmt"
)

// Logger wraps slog.Logger with snapshot-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithName adds a snapshot name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, words, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"words", words,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot saved",
			"name", name,
			"words", words,
			"bytes", bytes,
			"size", humanBytes(bytes),
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, words, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot loaded",
			"name", name,
			"words", words,
			"bytes", bytes,
			"size", humanBytes(bytes),
		)
	}
}

// LogBatch logs the outcome of SaveAll or LoadAll.
func (l *Logger) LogBatch(ctx context.Context, op string, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "snapshot batch failed",
			"op", op,
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot batch completed",
			"op", op,
			"count", count,
		)
	}
}

func humanBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return bytefmt.ByteSize(uint64(n))
}
