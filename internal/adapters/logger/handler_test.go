package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return h, buf
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_RecordAttrs(t *testing.T) {
	h, buf := newTestHandler(t)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "stage finished", 0)
	r.AddAttrs(slog.String("stage", "defects"))

	require.NoError(t, h.Handle(context.Background(), r))
	assert.Equal(t, "stage finished stage=defects\n", buf.String())
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	h, buf := newTestHandler(t)

	withID := h.WithAttrs([]slog.Attr{slog.String("identifier", "mp-149")})
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "cache hit", 0)

	require.NoError(t, withID.Handle(context.Background(), r))
	assert.Equal(t, "cache hit identifier=mp-149\n", buf.String())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	h, buf := newTestHandler(t)

	grouped := h.WithGroup("run").WithAttrs([]slog.Attr{slog.String("id", "mp-149")})
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "started", 0)

	require.NoError(t, grouped.Handle(context.Background(), r))
	assert.Equal(t, "started run.id=mp-149\n", buf.String())
}
