package knn

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with knn-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogFit logs a model fit.
func (l *Logger) LogFit(ctx context.Context, n, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"points", n,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fit completed",
			"points", n,
			"dimension", dimension,
		)
	}
}

// LogQuery logs a single neighbor query.
func (l *Logger) LogQuery(ctx context.Context, mode Mode, k, neighbors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"mode", mode.String(),
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"mode", mode.String(),
			"k", k,
			"neighbors", neighbors,
		)
	}
}

// LogBatch logs a batch prediction.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch prediction completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch prediction completed",
			"count", count,
		)
	}
}
