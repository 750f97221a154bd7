// Package logging declares the minimal structured-logging contract used
// across the service. The production implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware structured logger. The variadic args are
// interpreted as key-value pairs:
//
//	log.Info(ctx, "user disabled", "id", id, "by", actingUser)
type Logger interface {
	// Debug logs a verbose diagnostic message.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs an unusual but non-fatal condition.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
