package core

import (
	"context"

	"go.uber.org/zap"
)

// Context keys for analysis options
type contextKey string

const loggerKey contextKey = "logger"

// ContextWithLogger attaches a logger that executors hand to the engine.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFromContext returns the attached logger or a no-op logger.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
