package engines_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/adapters/engines"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Info(string) {}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(error)         {}
func (l *recordingLogger) SetOutput(io.Writer) {}
func (l *recordingLogger) SetJSON(bool)        {}

// fakeEngine writes a shell script standing in for an engine binary.
func fakeEngine(t *testing.T, script string) domain.EngineCommand {
	t.Helper()

	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return domain.EngineCommand{Command: []string{path}}
}

func testStructure(t *testing.T) *domain.StructureRecord {
	t.Helper()

	s, err := domain.NewStructure(
		[]string{"Si", "Si"},
		[][3]float64{{0, 0, 0}, {1.35, 1.35, 1.35}},
		[3][3]float64{{5.4, 0, 0}, {0, 5.4, 0}, {0, 0, 5.4}},
	)
	require.NoError(t, err)
	return s
}

func TestForceFieldEngine_Compute(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
echo '{"energy": -12.5, "forces": [[0,0,0],[0.1,0,0]], "stress": [0,0,0,0,0,0]}'`)
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	result, err := engine.Compute(t.Context(), testStructure(t))
	require.NoError(t, err)

	assert.InDelta(t, -12.5, result.Energy, 1e-12)
	assert.Len(t, result.Forces, 2)
	assert.Len(t, result.Stress, 6)
}

func TestForceFieldEngine_RequestEnvelope(t *testing.T) {
	t.Parallel()

	captured := filepath.Join(t.TempDir(), "request.json")
	cmd := fakeEngine(t, `cat > `+captured+`
echo '{"energy": 0}'`)
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	_, err := engine.Compute(t.Context(), testStructure(t))
	require.NoError(t, err)

	data, err := os.ReadFile(captured)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"task":"force_field"`)
	assert.Contains(t, string(data), `"positions"`)
	assert.Contains(t, string(data), `"Si"`)
}

func TestForceFieldEngine_NotConfigured(t *testing.T) {
	t.Parallel()

	engine := engines.NewForceFieldEngine(domain.EngineCommand{}, &recordingLogger{})
	assert.False(t, engine.Configured())

	_, err := engine.Compute(t.Context(), testStructure(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEngineNotConfigured))
}

func TestForceFieldEngine_NonZeroExit(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
exit 3`)
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	_, err := engine.Compute(t.Context(), testStructure(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrComputation.Error())
}

func TestForceFieldEngine_InvalidOutput(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
echo 'this is not json'`)
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	_, err := engine.Compute(t.Context(), testStructure(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEngineOutputInvalid.Error())
}

func TestForceFieldEngine_EnvironmentPassedThrough(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
printf '{"energy": %s}' "$MATSIM_PROBE"`)
	cmd.Environment = map[string]string{"MATSIM_PROBE": "42"}
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	result, err := engine.Compute(t.Context(), testStructure(t))
	require.NoError(t, err)
	assert.InDelta(t, 42.0, result.Energy, 1e-12)
}

func TestForceFieldEngine_StderrForwardedToLogger(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
echo 'relaxation step 1 diverged' >&2
echo '{"energy": 0}'`)
	log := &recordingLogger{}
	engine := engines.NewForceFieldEngine(cmd, log)

	_, err := engine.Compute(t.Context(), testStructure(t))
	require.NoError(t, err)

	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "force_field")
	assert.Contains(t, log.warns[0], "relaxation step 1 diverged")
}

func TestForceFieldEngine_ContextCancellation(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
sleep 30
echo '{"energy": 0}'`)
	engine := engines.NewForceFieldEngine(cmd, &recordingLogger{})

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	_, err := engine.Compute(ctx, testStructure(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestElectronicEngine_Compute(t *testing.T) {
	t.Parallel()

	cmd := fakeEngine(t, `cat > /dev/null
echo '{"energy": -101.2, "density_of_states": [0.1, 0.4, 0.2], "band_structure": [[0.0, 1.1]]}'`)
	engine := engines.NewElectronicEngine(cmd, &recordingLogger{})

	result, err := engine.Compute(t.Context(), testStructure(t))
	require.NoError(t, err)

	assert.InDelta(t, -101.2, result.Energy, 1e-12)
	assert.Len(t, result.DensityOfStates, 3)
	assert.Len(t, result.BandStructure, 1)
}

func TestImagingEngine_Simulate(t *testing.T) {
	t.Parallel()

	captured := filepath.Join(t.TempDir(), "request.json")
	cmd := fakeEngine(t, `cat > `+captured+`
echo '{"image": [[0.1, 0.2], [0.3, 0.4]]}'`)
	engine := engines.NewImagingEngine(cmd, &recordingLogger{})

	image, err := engine.Simulate(t.Context(), testStructure(t), ports.ImagingScanning)
	require.NoError(t, err)

	require.Len(t, image, 2)
	assert.InDelta(t, 0.4, image[1][1], 1e-12)

	data, err := os.ReadFile(captured)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"scanning"`)
}

func TestEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("unavailable when engine not configured", func(t *testing.T) {
		t.Parallel()

		ev := engines.NewEvaluator(engines.NewForceFieldEngine(domain.EngineCommand{}, &recordingLogger{}))
		assert.False(t, ev.Available())
	})

	t.Run("delegates to force field engine", func(t *testing.T) {
		t.Parallel()

		cmd := fakeEngine(t, `cat > /dev/null
echo '{"energy": -7.25}'`)
		ev := engines.NewEvaluator(engines.NewForceFieldEngine(cmd, &recordingLogger{}))
		require.True(t, ev.Available())

		energy, err := ev.TotalEnergy(t.Context(), testStructure(t))
		require.NoError(t, err)
		assert.InDelta(t, -7.25, energy, 1e-12)
	})
}
