package cache_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/cache"
	"go.trai.ch/matsim/internal/core/domain"
)

type nopLogger struct{ warnings int }

func (l *nopLogger) Info(string)         {}
func (l *nopLogger) Warn(string)         { l.warnings++ }
func (l *nopLogger) Error(error)         {}
func (l *nopLogger) SetOutput(io.Writer) {}
func (l *nopLogger) SetJSON(bool)        {}

func sampleResult(identifier string) domain.ComprehensiveResult {
	return domain.ComprehensiveResult{
		Identifier:  identifier,
		Predictions: map[string]float64{"band_gap": 1.1},
		Stages: map[string]domain.StageStatus{
			domain.StagePrediction: {State: domain.StageOK},
		},
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := cache.NewStore(t.TempDir(), &nopLogger{})
	require.NoError(t, err)

	want := sampleResult("mp-149")
	require.NoError(t, store.Put("mp-149", want))

	got, err := store.Get("mp-149", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	store, err := cache.NewStore(t.TempDir(), &nopLogger{})
	require.NoError(t, err)

	got, err := store.Get("never-stored", time.Hour)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetExpiredDeletesEntry(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := &clock
	store, err := cache.NewStoreWithClock(tmpDir, &nopLogger{}, func() time.Time { return *now })
	require.NoError(t, err)

	require.NoError(t, store.Put("mp-149", sampleResult("mp-149")))

	// Within the retention window the payload comes back verbatim.
	got, err := store.Get("mp-149", 30*24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Advance past the window: miss, and the backing file is removed.
	later := clock.Add(31 * 24 * time.Hour)
	now = &later

	got, err = store.Get("mp-149", 30*24*time.Hour)
	require.NoError(t, err)
	assert.Nil(t, got)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_GetCorruptTreatedAsMiss(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	log := &nopLogger{}
	store, err := cache.NewStore(tmpDir, log)
	require.NoError(t, err)

	require.NoError(t, store.Put("mp-149", sampleResult("mp-149")))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	path := filepath.Join(tmpDir, entries[0].Name())
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := store.Get("mp-149", time.Hour)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, log.warnings)

	// The corrupt file is cleaned up so the next Put starts fresh.
	entries, err = os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_PutOverwrites(t *testing.T) {
	t.Parallel()

	store, err := cache.NewStore(t.TempDir(), &nopLogger{})
	require.NoError(t, err)

	first := sampleResult("mp-149")
	require.NoError(t, store.Put("mp-149", first))

	second := sampleResult("mp-149")
	second.Predictions["band_gap"] = 2.2
	require.NoError(t, store.Put("mp-149", second))

	got, err := store.Get("mp-149", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 2.2, got.Predictions["band_gap"], 1e-12)
}

func TestStore_DistinctIdentifiersDistinctFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	store, err := cache.NewStore(tmpDir, &nopLogger{})
	require.NoError(t, err)

	require.NoError(t, store.Put("mp-149", sampleResult("mp-149")))
	require.NoError(t, store.Put("mp-13", sampleResult("mp-13")))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_Purge(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := &clock
	store, err := cache.NewStoreWithClock(tmpDir, &nopLogger{}, func() time.Time { return *now })
	require.NoError(t, err)

	require.NoError(t, store.Put("old-entry", sampleResult("old-entry")))

	later := clock.Add(48 * time.Hour)
	now = &later
	require.NoError(t, store.Put("new-entry", sampleResult("new-entry")))

	t.Run("purge older than", func(t *testing.T) {
		require.NoError(t, store.Purge(24*time.Hour))

		got, err := store.Get("old-entry", 0)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.Get("new-entry", 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("purge everything", func(t *testing.T) {
		require.NoError(t, store.Purge(0))

		entries, err := os.ReadDir(tmpDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestStore_Size(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	store, err := cache.NewStore(tmpDir, &nopLogger{})
	require.NoError(t, err)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, store.Put("mp-149", sampleResult("mp-149")))

	size, err = store.Size()
	require.NoError(t, err)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, info.Size(), size)
}
