// Package telemetry provides support for initializing the telemetry system.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is returned for contexts that never went through SetTraceID.
const NoTrace = "00000000-0000-0000-0000-000000000000"

// HeaderTraceID carries the trace id back to the caller.
const HeaderTraceID = "X-Trace-Id"

type TraceValues struct {
	TraceID    string
	Now        time.Time
	StatusCode int
}

type Telemetry struct{}

// NewTelemetry creates a new telemetry instance
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh trace id in ctx.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// GetTraceID returns the trace id in ctx, or NoTrace.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	return TraceID(ctx)
}

// TraceID returns the trace id in ctx, or NoTrace.
func TraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTrace
	}
	return v
}

// LogTraceID is TraceID for log records: contexts without a trace id yield
// an empty string so no attribute is added.
func LogTraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}
