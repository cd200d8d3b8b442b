package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/core/domain"
)

var cubicCell = [3][3]float64{{5.4, 0, 0}, {0, 5.4, 0}, {0, 0, 5.4}}

func TestNewStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		elements  []string
		positions [][3]float64
		cell      [3][3]float64
		wantErr   error
	}{
		{
			name:      "valid",
			elements:  []string{"Si", "O"},
			positions: [][3]float64{{0, 0, 0}, {1.2, 1.2, 1.2}},
			cell:      cubicCell,
		},
		{
			name:      "count mismatch",
			elements:  []string{"Si", "O"},
			positions: [][3]float64{{0, 0, 0}},
			cell:      cubicCell,
			wantErr:   domain.ErrElementPositionMismatch,
		},
		{
			name:      "empty",
			elements:  nil,
			positions: nil,
			cell:      cubicCell,
			wantErr:   domain.ErrEmptyStructure,
		},
		{
			name:      "singular cell",
			elements:  []string{"Si"},
			positions: [][3]float64{{0, 0, 0}},
			cell:      [3][3]float64{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}},
			wantErr:   domain.ErrSingularCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := domain.NewStructure(tt.elements, tt.positions, tt.cell)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.elements), s.Len())
			assert.Equal(t, [3]bool{true, true, true}, s.Periodic)
		})
	}
}

func TestStructureRecord_Transforms(t *testing.T) {
	t.Parallel()

	base, err := domain.NewStructure(
		[]string{"Si", "Si", "O"},
		[][3]float64{{0, 0, 0}, {2.7, 2.7, 0}, {1.35, 1.35, 1.35}},
		cubicCell,
	)
	require.NoError(t, err)

	t.Run("WithoutAtom", func(t *testing.T) {
		t.Parallel()

		removed, err := base.WithoutAtom(1)
		require.NoError(t, err)
		assert.Equal(t, 2, removed.Len())
		assert.Equal(t, "O", removed.Elements[1].String())

		// The original is untouched.
		assert.Equal(t, 3, base.Len())
		assert.Equal(t, "Si", base.Elements[1].String())

		_, err = base.WithoutAtom(3)
		assert.ErrorIs(t, err, domain.ErrAtomIndexOutOfRange)
		_, err = base.WithoutAtom(-1)
		assert.ErrorIs(t, err, domain.ErrAtomIndexOutOfRange)
	})

	t.Run("WithAtom", func(t *testing.T) {
		t.Parallel()

		grown := base.WithAtom("N", [3]float64{4, 4, 4})
		assert.Equal(t, 4, grown.Len())
		assert.Equal(t, "N", grown.Elements[3].String())
		assert.Equal(t, 3, base.Len())
	})

	t.Run("WithSpecies", func(t *testing.T) {
		t.Parallel()

		swapped, err := base.WithSpecies(2, "N")
		require.NoError(t, err)
		assert.Equal(t, "N", swapped.Elements[2].String())
		assert.Equal(t, "O", base.Elements[2].String())

		_, err = base.WithSpecies(5, "N")
		assert.ErrorIs(t, err, domain.ErrAtomIndexOutOfRange)
	})
}

func TestInternedString(t *testing.T) {
	t.Parallel()

	a := domain.NewInternedString("Si")
	b := domain.NewInternedString("Si")
	c := domain.NewInternedString("O")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "Si", a.String())

	data, err := json.Marshal([]domain.InternedString{a, c})
	require.NoError(t, err)
	assert.JSONEq(t, `["Si","O"]`, string(data))

	var decoded []domain.InternedString
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []domain.InternedString{a, c}, decoded)
}

func TestDefectRecord_Count(t *testing.T) {
	t.Parallel()

	record := &domain.DefectRecord{
		Sites: map[domain.DefectKind][][3]float64{
			domain.DefectVacancy:      {{0, 0, 0}, {1, 1, 1}},
			domain.DefectInterstitial: {{2, 2, 2}},
		},
	}
	assert.Equal(t, 3, record.Count())

	empty := &domain.DefectRecord{}
	assert.Equal(t, 0, empty.Count())
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := domain.NewConfig("/tmp/workspace")

	assert.Equal(t, "/tmp/workspace", cfg.Workspace)
	assert.Equal(t, domain.DefaultParallelism, cfg.Compute.Parallelism)
	assert.Equal(t, domain.DefaultStageTimeout, cfg.Compute.StageTimeout)
	assert.Equal(t, domain.DefaultCacheRetention, cfg.Cache.Retention)
	assert.InDelta(t, domain.DefaultOccupancyTolerance, cfg.Defects.OccupancyTolerance, 1e-12)
	assert.False(t, cfg.Engines.ForceField.Configured())
}
