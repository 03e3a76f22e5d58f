package tresor

import (
	"context"
	"log/slog"
)

// Logger is a context-aware, structured logger Store uses to report
// lifecycle events (created, sealed, opened, upgraded). It never receives
// key material, passwords, or field values — only ids, sizes, and
// durations. A Store with no injected Logger uses noopLogger and reports
// nothing.
//
// Keeping this as a small interface lets the embedding host plug in slog,
// zap, or zerolog without this library taking a direct dependency on any
// of them.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// NewSlogLogger wraps an *slog.Logger as a Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

type slogLogger struct{ l *slog.Logger }

func (s *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Warn(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}
func (noopLogger) With(...any) Logger                    { return noopLogger{} }
