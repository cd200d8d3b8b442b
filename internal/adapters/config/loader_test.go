package config_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/config"
	"go.trai.ch/matsim/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(error)         {}
func (nopLogger) SetOutput(io.Writer) {}
func (nopLogger) SetJSON(bool)        {}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, domain.MatsimFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.NewLoader(nopLogger{}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Workspace)
	assert.Equal(t, domain.DefaultParallelism, cfg.Compute.Parallelism)
	assert.Equal(t, domain.DefaultStageTimeout, cfg.Compute.StageTimeout)
	assert.Equal(t, domain.DefaultCacheRetention, cfg.Cache.Retention)
	assert.InDelta(t, domain.DefaultOccupancyTolerance, cfg.Defects.OccupancyTolerance, 1e-12)
	assert.False(t, cfg.Engines.ForceField.Configured())
}

func TestLoader_FullFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: "1"
cache:
  dir: .matsim/results
  retention: 48h
defects:
  occupancyTolerance: 0.75
compute:
  parallelism: 2
  stageTimeout: 90s
engines:
  forceField:
    cmd: ["ff-engine", "--precision", "high"]
    environment:
      OMP_NUM_THREADS: "4"
  imaging:
    cmd: ["tem-engine"]
source:
  url: https://materials.example.com/api
  apiKey: secret
models:
  band_gap:
    intercept: 1.2
    coefficients:
      density: -0.3
`)

	cfg, err := config.NewLoader(nopLogger{}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Workspace)
	assert.Equal(t, filepath.Join(dir, ".matsim", "results"), cfg.Cache.Dir)
	assert.Equal(t, 48*time.Hour, cfg.Cache.Retention)
	assert.InDelta(t, 0.75, cfg.Defects.OccupancyTolerance, 1e-12)
	assert.Equal(t, 2, cfg.Compute.Parallelism)
	assert.Equal(t, 90*time.Second, cfg.Compute.StageTimeout)

	require.True(t, cfg.Engines.ForceField.Configured())
	assert.Equal(t, []string{"ff-engine", "--precision", "high"}, cfg.Engines.ForceField.Command)
	assert.Equal(t, "4", cfg.Engines.ForceField.Environment["OMP_NUM_THREADS"])
	assert.True(t, cfg.Engines.Imaging.Configured())
	assert.False(t, cfg.Engines.Electronic.Configured())

	assert.Equal(t, "https://materials.example.com/api", cfg.Source.URL)
	assert.Equal(t, "secret", cfg.Source.APIKey)

	require.Contains(t, cfg.Models, "band_gap")
	assert.InDelta(t, 1.2, cfg.Models["band_gap"].Intercept, 1e-12)
	assert.InDelta(t, -0.3, cfg.Models["band_gap"].Coefficients["density"], 1e-12)
}

func TestLoader_WalksUpToFindFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "compute:\n  parallelism: 8\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := config.NewLoader(nopLogger{}).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Workspace)
	assert.Equal(t, 8, cfg.Compute.Parallelism)
}

func TestLoader_NearestFileWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "compute:\n  parallelism: 8\n")

	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	writeConfig(t, nested, "compute:\n  parallelism: 2\n")

	cfg, err := config.NewLoader(nopLogger{}).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, nested, cfg.Workspace)
	assert.Equal(t, 2, cfg.Compute.Parallelism)
}

func TestLoader_APIKeyFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "source:\n  url: https://materials.example.com\n  apiKey: from-file\n")
	t.Setenv(config.APIKeyEnvVar, "from-env")

	cfg, err := config.NewLoader(nopLogger{}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Source.APIKey)
}

func TestLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cache: [not a mapping")

	_, err := config.NewLoader(nopLogger{}).Load(dir)
	require.Error(t, err)
}

func TestLoader_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "bad retention",
			content: "cache:\n  retention: sometimes\n",
		},
		{
			name:    "negative timeout",
			content: "compute:\n  stageTimeout: -5s\n",
		},
		{
			name:    "zero tolerance",
			content: "defects:\n  occupancyTolerance: 0\n",
		},
		{
			name:    "negative parallelism",
			content: "compute:\n  parallelism: -1\n",
		},
		{
			name:    "url and dir both set",
			content: "source:\n  url: https://x\n  dir: ./structures\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := config.NewLoader(nopLogger{}).Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
		})
	}
}

func TestLoader_SourceDirResolvedAgainstWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "source:\n  dir: structures\n")

	cfg, err := config.NewLoader(nopLogger{}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "structures"), cfg.Source.Dir)
}
