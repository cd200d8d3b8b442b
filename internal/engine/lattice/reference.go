// Package lattice generates the ideal reference positions an observed
// structure is compared against during defect classification.
package lattice

import (
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/zerr"
)

// Strategy produces the full ideal site list for one structure. A strategy
// must return every site or fail; partial results would be indistinguishable
// from vacancies downstream.
type Strategy interface {
	IdealPositions(structure *domain.StructureRecord) ([][3]float64, error)
}

// Reference dispatches ideal-position generation to the strategy registered
// for the structure's symmetry class.
type Reference struct {
	strategies map[domain.SymmetryClass]Strategy
}

// NewReference creates a Reference with the built-in strategies registered.
func NewReference() *Reference {
	r := &Reference{strategies: make(map[domain.SymmetryClass]Strategy)}
	r.Register(domain.SymmetrySites, explicitSites{})
	r.Register(domain.SymmetrySupercell, supercell{})
	return r
}

// Register adds or replaces the strategy for a symmetry class.
func (r *Reference) Register(class domain.SymmetryClass, s Strategy) {
	r.strategies[class] = s
}

// IdealPositions returns the ideal atomic positions for the structure.
// When no strategy is registered for the structure's symmetry class it fails
// with domain.ErrUnsupportedLattice; it never returns an empty or partial
// site list.
func (r *Reference) IdealPositions(structure *domain.StructureRecord) ([][3]float64, error) {
	class := structure.Metadata.Symmetry

	strategy, ok := r.strategies[class]
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedLattice, "symmetry", string(class))
	}

	positions, err := strategy.IdealPositions(structure)
	if err != nil {
		return nil, err
	}

	if len(positions) == 0 {
		return nil, zerr.With(domain.ErrNoIdealSites, "symmetry", string(class))
	}

	return positions, nil
}

// explicitSites serves structures that carry their own ideal site list.
type explicitSites struct{}

func (explicitSites) IdealPositions(structure *domain.StructureRecord) ([][3]float64, error) {
	sites := structure.Metadata.IdealSites
	if len(sites) == 0 {
		return nil, zerr.With(domain.ErrNoIdealSites, "symmetry", string(domain.SymmetrySites))
	}

	out := make([][3]float64, len(sites))
	copy(out, sites)
	return out, nil
}

// supercell replicates a primitive basis over the cell. The basis positions
// are fractional coordinates of the repeat unit; Repeat gives the number of
// repetitions along each cell axis.
type supercell struct{}

func (supercell) IdealPositions(structure *domain.StructureRecord) ([][3]float64, error) {
	meta := structure.Metadata
	if len(meta.Basis) == 0 {
		return nil, zerr.With(domain.ErrNoIdealSites, "reason", "empty basis")
	}

	for axis, n := range meta.Repeat {
		if n <= 0 {
			err := zerr.With(domain.ErrNoIdealSites, "reason", "non-positive repeat count")
			return nil, zerr.With(err, "axis", axis)
		}
	}

	nx, ny, nz := meta.Repeat[0], meta.Repeat[1], meta.Repeat[2]
	out := make([][3]float64, 0, nx*ny*nz*len(meta.Basis))

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for _, b := range meta.Basis {
					frac := [3]float64{
						(float64(ix) + b[0]) / float64(nx),
						(float64(iy) + b[1]) / float64(ny),
						(float64(iz) + b[2]) / float64(nz),
					}
					out = append(out, cartesian(frac, structure.Cell))
				}
			}
		}
	}

	return out, nil
}

// cartesian converts fractional cell coordinates to Cartesian, treating the
// cell rows as lattice vectors.
func cartesian(frac [3]float64, cell [3][3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = frac[0]*cell[0][i] + frac[1]*cell[1][i] + frac[2]*cell[2][i]
	}
	return out
}
