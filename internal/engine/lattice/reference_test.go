package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/engine/lattice"
)

func newCubicStructure(t *testing.T, side float64) *domain.StructureRecord {
	t.Helper()

	s, err := domain.NewStructure(
		[]string{"Si"},
		[][3]float64{{0, 0, 0}},
		[3][3]float64{{side, 0, 0}, {0, side, 0}, {0, 0, side}},
	)
	require.NoError(t, err)
	return s
}

func TestReference_UnknownSymmetryClass(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	s := newCubicStructure(t, 3.0)
	s.Metadata.Symmetry = "hexagonal-p63"

	_, err := ref.IdealPositions(s)
	require.ErrorIs(t, err, domain.ErrUnsupportedLattice)
}

func TestReference_MissingSymmetryClass(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	// A structure with no symmetry metadata must fail loudly instead of
	// yielding an empty reference lattice.
	s := newCubicStructure(t, 3.0)
	_, err := ref.IdealPositions(s)
	require.ErrorIs(t, err, domain.ErrUnsupportedLattice)
}

func TestReference_ExplicitSites(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	s := newCubicStructure(t, 3.0)
	s.Metadata.Symmetry = domain.SymmetrySites
	s.Metadata.IdealSites = [][3]float64{{0, 0, 0}, {1.5, 1.5, 1.5}}

	got, err := ref.IdealPositions(s)
	require.NoError(t, err)
	assert.Equal(t, s.Metadata.IdealSites, got)

	t.Run("returned slice is a copy", func(t *testing.T) {
		got[0][0] = 99
		assert.Equal(t, 0.0, s.Metadata.IdealSites[0][0])
	})
}

func TestReference_ExplicitSites_Empty(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	s := newCubicStructure(t, 3.0)
	s.Metadata.Symmetry = domain.SymmetrySites

	_, err := ref.IdealPositions(s)
	require.ErrorIs(t, err, domain.ErrNoIdealSites)
}

func TestReference_Supercell(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	s := newCubicStructure(t, 4.0)
	s.Metadata.Symmetry = domain.SymmetrySupercell
	s.Metadata.Basis = [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}
	s.Metadata.Repeat = [3]int{2, 2, 2}

	got, err := ref.IdealPositions(s)
	require.NoError(t, err)

	// 2x2x2 repetitions of a two-site basis.
	require.Len(t, got, 16)

	assert.Contains(t, got, [3]float64{0, 0, 0})
	assert.Contains(t, got, [3]float64{1, 1, 1})
	assert.Contains(t, got, [3]float64{2, 2, 2})
	assert.Contains(t, got, [3]float64{3, 3, 3})
}

func TestReference_Supercell_InvalidRepeat(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()

	s := newCubicStructure(t, 4.0)
	s.Metadata.Symmetry = domain.SymmetrySupercell
	s.Metadata.Basis = [][3]float64{{0, 0, 0}}

	_, err := ref.IdealPositions(s)
	require.ErrorIs(t, err, domain.ErrNoIdealSites)
}

func TestReference_RegisterCustomStrategy(t *testing.T) {
	t.Parallel()

	ref := lattice.NewReference()
	ref.Register("custom", strategyFunc(func(*domain.StructureRecord) ([][3]float64, error) {
		return [][3]float64{{1, 2, 3}}, nil
	}))

	s := newCubicStructure(t, 3.0)
	s.Metadata.Symmetry = "custom"

	got, err := ref.IdealPositions(s)
	require.NoError(t, err)
	assert.Equal(t, [][3]float64{{1, 2, 3}}, got)
}

type strategyFunc func(*domain.StructureRecord) ([][3]float64, error)

func (f strategyFunc) IdealPositions(s *domain.StructureRecord) ([][3]float64, error) {
	return f(s)
}
