// Package telemetry wraps the zap structured logger and a private
// Prometheus metrics registry behind the minimal interfaces the simulation
// core actually calls.
package telemetry

import (
	"go.uber.org/zap"
)

// Logger is the five-level logging surface the core calls: Debug for
// per-tick state, Info for lifecycle events, Warning for capacity-exceeded
// termination, Error for extractor failure, and Critical for conditions
// that should page someone even though the simulation itself continues.
type Logger struct {
	z *zap.Logger
}

// New wraps a *zap.Logger. Passing nil is equivalent to NewNop().
func New(z *zap.Logger) *Logger {
	if z == nil {
		return NewNop()
	}
	return &Logger{z: z}
}

// NewNop returns a Logger that discards everything, for tests that don't
// care about log output.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// NewDevelopment builds a human-readable, debug-enabled logger, for the
// CLI's --debug flag.
func NewDevelopment() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewProduction builds a JSON, info-and-above logger, the CLI's default.
func NewProduction() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// OrNop returns l, or a no-op logger if l is nil. Packages that accept an
// optional *Logger use this to avoid a nil check at every call site.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return l
}

func (l *Logger) fields(kv []interface{}) []zap.Field {
	if len(kv) == 0 {
		return nil
	}
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}

// Debug logs per-tick state at debug level.
func (l *Logger) Debug(msg string, kv ...interface{}) { l.z.Debug(msg, l.fields(kv)...) }

// Info logs a lifecycle event (start, agent finished).
func (l *Logger) Info(msg string, kv ...interface{}) { l.z.Info(msg, l.fields(kv)...) }

// Warn logs a recoverable condition (capacity-exceeded termination).
func (l *Logger) Warn(msg string, kv ...interface{}) { l.z.Warn(msg, l.fields(kv)...) }

// Error logs a failure the caller recovered from (extractor failure).
func (l *Logger) Error(msg string, kv ...interface{}) { l.z.Error(msg, l.fields(kv)...) }

// Critical logs at error severity tagged "severity=critical". zap has no
// level between Error and the process-terminating DPanic/Fatal, and nothing
// in this simulation should terminate the process on a latched physical
// limit (out-of-charge, overcharge), so Critical stays at Error and relies
// on the tag for anyone filtering logs downstream.
func (l *Logger) Critical(msg string, kv ...interface{}) {
	fields := append(l.fields(kv), zap.String("severity", "critical"))
	l.z.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }
