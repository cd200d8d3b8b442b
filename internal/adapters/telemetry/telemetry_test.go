package telemetry_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/telemetry"
)

// recordingLogger captures log lines for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(error)         {}
func (l *recordingLogger) SetOutput(io.Writer) {}
func (l *recordingLogger) SetJSON(bool)        {}

func TestOTelTracer_SpanCompletion(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	tracer := telemetry.NewOTelTracer(log)

	ctx, span := tracer.Start(t.Context(), "stage.defects")
	require.NotNil(t, ctx)
	span.SetAttribute("identifier", "mp-149")
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "stage.defects completed in")
	assert.Empty(t, log.warns)
}

func TestOTelTracer_FailedSpan(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	tracer := telemetry.NewOTelTracer(log)

	_, span := tracer.Start(t.Context(), "stage.force_field")
	span.RecordError(errors.New("potential file missing"))
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "stage.force_field failed after")
	assert.Contains(t, log.warns[0], "potential file missing")
	assert.Empty(t, log.infos)
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	tracer := telemetry.NewOTelTracer(log)

	ctx, parent := tracer.Start(t.Context(), "simulation")
	_, child := tracer.Start(ctx, "stage.imaging")
	child.End()
	parent.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	require.Len(t, log.infos, 2)
	assert.Contains(t, log.infos[0], "stage.imaging")
	assert.Contains(t, log.infos[1], "simulation")
}

func TestOTelTracer_NilLogger(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewOTelTracer(nil)

	_, span := tracer.Start(t.Context(), "stage.electronic_structure")
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoopTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoop()

	ctx := t.Context()
	got, span := tracer.Start(ctx, "anything")
	assert.Equal(t, ctx, got)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		span.SetAttribute("k", "v")
		span.RecordError(errors.New("ignored"))
		span.End()
	})
	require.NoError(t, tracer.Shutdown(ctx))
}
