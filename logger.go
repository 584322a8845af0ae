package soa

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with soa-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithContainer adds the container kind ("dense" or "sparse") to the logger.
func (l *Logger) WithContainer(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("container", kind),
	}
}

// debugEnabled guards debug calls on hot paths so arguments are not boxed
// when debug output is off.
func (l *Logger) debugEnabled() bool {
	return l.Enabled(context.Background(), slog.LevelDebug)
}

// LogCreate logs container construction.
func (l *Logger) LogCreate(schema Schema) {
	if !l.debugEnabled() {
		return
	}
	l.Debug("container created",
		"fields", len(schema),
		"names", schema.Names(),
	)
}

// LogCompaction logs a trailing compaction triggered by Delete or Pop.
func (l *Logger) LogCompaction(freed, length int) {
	if !l.debugEnabled() {
		return
	}
	l.Debug("trailing slots compacted",
		"freed", freed,
		"length", length,
	)
}

// LogBatchFailure logs a multi-record insert that stopped at a failing record.
func (l *Logger) LogBatchFailure(op string, written, total int, err error) {
	l.Warn("batch insert stopped",
		"op", op,
		"written", written,
		"total", total,
		"error", err,
	)
}

// LogClear logs a Clear call.
func (l *Logger) LogClear(size int) {
	if !l.debugEnabled() {
		return
	}
	l.Debug("container cleared",
		"size", size,
	)
}
