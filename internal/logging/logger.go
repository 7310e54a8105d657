// Package logging defines the structured-logging interface used across
// the project and its log/slog backed implementation.
package logging

import "context"

// Logger writes leveled records with alternating key and value args:
//
//	l.Info(ctx, "storage created", "id", id, "type", kind)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that prefixes every record with args.
	With(args ...any) Logger
}
