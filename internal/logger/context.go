package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds connection-scoped logging context
type LogContext struct {
	Operation  string    // Wire operation name (op_attach, op_execute, etc.)
	Database   string    // Database path or service name
	User       string    // Login user name
	Host       string    // Server host
	Generation int32     // Accepted protocol generation
	StartTime  time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a connection to the given host
func NewLogContext(host string) *LogContext {
	return &LogContext{
		Host:      host,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		Operation:  lc.Operation,
		Database:   lc.Database,
		User:       lc.User,
		Host:       lc.Host,
		Generation: lc.Generation,
		StartTime:  lc.StartTime,
	}
}

// WithOperation returns a copy with the operation set
func (lc *LogContext) WithOperation(operation string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Operation = operation
	}
	return clone
}

// WithAttachment returns a copy with the attachment identity set
func (lc *LogContext) WithAttachment(database, user string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Database = database
		clone.User = user
	}
	return clone
}

// WithGeneration returns a copy with the accepted generation set
func (lc *LogContext) WithGeneration(generation int32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Generation = generation
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
