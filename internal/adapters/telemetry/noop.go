package telemetry

import (
	"context"

	"go.trai.ch/matsim/internal/core/ports"
)

// NoopTracer is a ports.Tracer that records nothing. It is the default when
// tracing is disabled.
type NoopTracer struct{}

// NewNoop returns a tracer that discards all spans.
func NewNoop() *NoopTracer {
	return &NoopTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (*NoopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

// Shutdown does nothing.
func (*NoopTracer) Shutdown(_ context.Context) error {
	return nil
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}
