// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEntity returns a logger with entity type and id attached.
func (l *Logger) WithEntity(entity, id string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("entity", entity), slog.String("id", id)),
	}
}

// MutationApplied logs a successful lifecycle mutation.
func (l *Logger) MutationApplied(op, entity, id string, attrs ...any) {
	args := append([]any{
		slog.String("op", op),
		slog.String("entity", entity),
		slog.String("id", id),
	}, attrs...)
	l.Info("mutation_applied", args...)
}

// MutationRejected logs a lifecycle mutation that was refused.
func (l *Logger) MutationRejected(op, entity, id string, err error) {
	l.Warn("mutation_rejected",
		slog.String("op", op),
		slog.String("entity", entity),
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
}

// SeedLoaded logs how many records were loaded into the store.
func (l *Logger) SeedLoaded(source string, leads, deals int) {
	l.Info("seed_loaded",
		slog.String("source", source),
		slog.Int("leads", leads),
		slog.Int("deals", deals),
	)
}
