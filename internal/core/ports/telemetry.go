package ports

import "context"

// Span represents one traced unit of work, typically a computation stage.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Span interface {
	// End completes the span.
	End()

	// RecordError attaches an error to the span.
	RecordError(err error)

	// SetAttribute attaches a key/value attribute to the span.
	SetAttribute(key string, value any)
}

// Tracer creates spans around orchestrator stages.
type Tracer interface {
	// Start begins a new span with the given name. The returned context
	// carries the span for nested Start calls.
	Start(ctx context.Context, name string) (context.Context, Span)

	// Shutdown flushes and releases tracer resources.
	Shutdown(ctx context.Context) error
}
