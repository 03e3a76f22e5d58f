package tresor

import (
	"context"

	"github.com/r4gus/tresor/audit"
)

// AuditLogger adapts an audit.Log into a Logger, so WithLogger can drive
// both structured logging and the hash-chained audit trail from the same
// Store lifecycle events. Warn entries are appended with a "warn:" prefix
// and Error entries with an "error:" prefix. With attaches its fields only
// to the forwarded Logger (the receiver itself is returned when there is
// none), since audit.Log has no notion of attached fields.
type AuditLogger struct {
	log   *audit.Log
	clock Clock
	next  Logger
}

// NewAuditLogger returns a Logger that appends every event to log (using
// clock for its timestamp) and, if next is non-nil, also forwards to it.
func NewAuditLogger(log *audit.Log, clock Clock, next Logger) *AuditLogger {
	if clock == nil {
		clock = SystemClock
	}
	return &AuditLogger{log: log, clock: clock, next: next}
}

func (a *AuditLogger) Info(ctx context.Context, msg string, args ...any) {
	a.log.Append(a.clock(), msg)
	if a.next != nil {
		a.next.Info(ctx, msg, args...)
	}
}

func (a *AuditLogger) Warn(ctx context.Context, msg string, args ...any) {
	a.log.Append(a.clock(), "warn: "+msg)
	if a.next != nil {
		a.next.Warn(ctx, msg, args...)
	}
}

func (a *AuditLogger) Error(ctx context.Context, msg string, args ...any) {
	a.log.Append(a.clock(), "error: "+msg)
	if a.next != nil {
		a.next.Error(ctx, msg, args...)
	}
}

func (a *AuditLogger) With(args ...any) Logger {
	if a.next != nil {
		return &AuditLogger{log: a.log, clock: a.clock, next: a.next.With(args...)}
	}
	return a
}
