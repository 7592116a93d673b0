// Package logging provides the process-wide structured logger and a
// context-scoped logger facade over log/slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

type ctxKey struct{}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(newConsoleLogger(os.Stderr, slog.LevelInfo))
}

// Default returns the process-wide logger
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	defaultLogger.Store(logger)
}

// With stores a logger in the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger stored in the context, falling back to Default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

// NewConsoleLogger builds a human-readable colored logger
func NewConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	return newConsoleLogger(w, level)
}

func newConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithSource(false),
		clog.WithReplaceAttr(redactor()),
	)
	return slog.New(handler)
}

// NewJSONLogger builds a machine-readable logger for production
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactor(),
	}))
}

// redactor masks secret-ish values so tokens never reach log output
func redactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("Token"),
		masq.WithFieldName("Secret"),
		masq.WithFieldPrefix("secret"),
	)
}
