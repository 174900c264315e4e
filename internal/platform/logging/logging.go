package logging

import (
	"context"
	"log/slog"
	"os"
)

// ctxKey is the key used to store the logger in a context.
// Using a custom type prevents collisions.
type ctxKey struct{}

// NewLogger builds the process-wide structured logger. Production gets JSON
// output at Info level, everything else gets text at Debug.
func NewLogger(isProduction bool) *slog.Logger {
	var handler slog.Handler
	if isProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the scoped logger from the context.
// It returns the default logger if none is found.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
