package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr single error",
			err:          zerr.New("structure fetch failed"),
			wantMessages: []string{"structure fetch failed"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(
					errors.New("connection refused"),
					"structure provider unreachable",
				),
				"simulation failed",
			),
			wantMessages: []string{
				"simulation failed",
				"structure provider unreachable",
				"connection refused",
			},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "zerr with metadata",
			err: func() error {
				e := zerr.New("stage failed")
				e = zerr.With(e, "stage", "defects")
				e = zerr.With(e, "attempt", 2)
				return e
			}(),
			wantMessages: []string{"stage failed"},
			wantMetadata: []map[string]any{
				{"stage": "defects", "attempt": 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			require.Len(t, entries, len(tt.wantMessages))

			for i, entry := range entries {
				assert.Equal(t, tt.wantMessages[i], entry.MessageText())
				assert.Equal(t, tt.wantMetadata[i], entry.MetadataMap())
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name: "single entry",
			entries: []logger.ErrorEntry{
				logger.NewErrorEntry("cache unreadable", nil),
			},
			want: "Error: cache unreadable",
		},
		{
			name: "chain",
			entries: []logger.ErrorEntry{
				logger.NewErrorEntry("simulation failed", nil),
				logger.NewErrorEntry("force field stage failed", nil),
			},
			want: "Error: simulation failed\n\n  Caused by:\n    → force field stage failed",
		},
		{
			name: "metadata sorted by key",
			entries: []logger.ErrorEntry{
				logger.NewErrorEntry("validation failed", map[string]any{
					"zebra": "z",
					"alpha": "a",
					"mike":  "m",
				}),
			},
			want: "Error: validation failed (alpha=a, mike=m, zebra=z)",
		},
		{
			name: "multiline cause",
			entries: []logger.ErrorEntry{
				logger.NewErrorEntry("config invalid", nil),
				logger.NewErrorEntry("yaml: unmarshal errors:\n  line 3: cannot unmarshal", nil),
			},
			want: "Error: config invalid\n\n  Caused by:\n    → yaml: unmarshal errors:\n        line 3: cannot unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
