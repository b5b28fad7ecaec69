package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// DefaultCommandTimeout bounds every handler unless overridden with WithTimeout.
// Persisting a large project is the slowest field command.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext returns ctx, or context.Background when ctx is nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout bounds ctx by timeout. Non-positive timeouts leave ctx
// unbounded.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger is logging.Ensure for handler constructors.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.Ensure(logger)
}
