// internal/logging/context.go
package logging

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	if runID := RunIDFromContext(ctx); runID != "" {
		return []zap.Field{zap.String("run.id", runID)}
	}
	return nil
}

type runCtxKey struct{}

// WithRunID tags ctx with a fresh run ID. Callers derive one per generation
// pass, so each regeneration in watch mode logs under its own ID.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, runCtxKey{}, uuid.NewString())
}

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(runCtxKey{}).(string); ok {
		return r
	}
	return ""
}

// loggerCtxKey is the context key for Logger.
type loggerCtxKey struct{}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
