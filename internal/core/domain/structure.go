// Package domain contains the core data model for matsim.
package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// SymmetryClass identifies which lattice reference strategy applies to a
// structure. The class is carried in the structure metadata by the data
// source; an unknown class makes defect classification fail with
// ErrUnsupportedLattice rather than comparing against a guessed lattice.
type SymmetryClass string

const (
	// SymmetrySupercell marks structures whose ideal lattice is a primitive
	// basis replicated over the cell.
	SymmetrySupercell SymmetryClass = "supercell"

	// SymmetrySites marks structures that carry an explicit list of ideal
	// sites in their metadata.
	SymmetrySites SymmetryClass = "sites"
)

// StructureMetadata carries everything about a structure that is not the
// atomic arrangement itself.
type StructureMetadata struct {
	// Symmetry selects the lattice reference strategy.
	Symmetry SymmetryClass `json:"symmetry,omitempty" yaml:"symmetry,omitempty"`

	// Basis holds the primitive basis positions for supercell expansion,
	// in fractional coordinates of the repeat unit.
	Basis [][3]float64 `json:"basis,omitempty" yaml:"basis,omitempty"`

	// Repeat is the number of repetitions of the basis along each cell axis.
	Repeat [3]int `json:"repeat,omitempty" yaml:"repeat,omitempty"`

	// IdealSites holds explicit ideal positions for SymmetrySites structures.
	IdealSites [][3]float64 `json:"ideal_sites,omitempty" yaml:"ideal_sites,omitempty"`

	// ExpectedSpecies maps an ideal site index to the element expected at
	// that site. Sites without an entry accept any element.
	ExpectedSpecies map[int]InternedString `json:"expected_species,omitempty" yaml:"expected_species,omitempty"`

	// Source records where the structure came from (API URL, file path).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// StructureRecord is an immutable snapshot of one atomic structure: an
// ordered sequence of (element, position) pairs plus the periodic cell.
// Records are never mutated after construction; every transform returns a
// fresh record with copied slices.
type StructureRecord struct {
	Identifier string            `json:"identifier,omitempty"`
	Elements   []InternedString  `json:"elements"`
	Positions  [][3]float64      `json:"positions"`
	Cell       [3][3]float64     `json:"cell"`
	Periodic   [3]bool           `json:"periodic"`
	Metadata   StructureMetadata `json:"metadata,omitempty"`
}

// NewStructure validates and builds a StructureRecord. It fails when the
// element and position counts disagree or when the cell matrix is singular.
func NewStructure(elements []string, positions [][3]float64, cell [3][3]float64) (*StructureRecord, error) {
	if len(elements) != len(positions) {
		err := zerr.With(ErrElementPositionMismatch, "elements", len(elements))
		return nil, zerr.With(err, "positions", len(positions))
	}

	if len(elements) == 0 {
		return nil, ErrEmptyStructure
	}

	if math.Abs(det3(cell)) < cellSingularityTolerance {
		return nil, ErrSingularCell
	}

	return &StructureRecord{
		Elements:  NewInternedStrings(elements),
		Positions: clonePositions(positions),
		Cell:      cell,
		Periodic:  [3]bool{true, true, true},
	}, nil
}

// cellSingularityTolerance is the determinant magnitude below which a cell
// matrix is considered singular.
const cellSingularityTolerance = 1e-12

// Len returns the number of atoms in the structure.
func (s *StructureRecord) Len() int {
	return len(s.Elements)
}

// WithoutAtom returns a copy of the structure with the atom at index i
// removed. Used to materialize a vacancy for formation-energy evaluation.
func (s *StructureRecord) WithoutAtom(i int) (*StructureRecord, error) {
	if i < 0 || i >= s.Len() {
		return nil, zerr.With(ErrAtomIndexOutOfRange, "index", i)
	}

	out := s.clone()
	out.Elements = append(out.Elements[:i], out.Elements[i+1:]...)
	out.Positions = append(out.Positions[:i], out.Positions[i+1:]...)
	return out, nil
}

// WithAtom returns a copy of the structure with an extra atom appended.
// Used to materialize an interstitial for formation-energy evaluation.
func (s *StructureRecord) WithAtom(element string, position [3]float64) *StructureRecord {
	out := s.clone()
	out.Elements = append(out.Elements, NewInternedString(element))
	out.Positions = append(out.Positions, position)
	return out
}

// WithSpecies returns a copy of the structure with the element at index i
// replaced. Used to materialize a substitution for formation-energy
// evaluation.
func (s *StructureRecord) WithSpecies(i int, element string) (*StructureRecord, error) {
	if i < 0 || i >= s.Len() {
		return nil, zerr.With(ErrAtomIndexOutOfRange, "index", i)
	}

	out := s.clone()
	out.Elements[i] = NewInternedString(element)
	return out, nil
}

// clone returns a deep copy of the record. Slices are copied so the original
// stays untouched by any subsequent append or assignment.
func (s *StructureRecord) clone() *StructureRecord {
	out := *s
	out.Elements = make([]InternedString, len(s.Elements))
	copy(out.Elements, s.Elements)
	out.Positions = clonePositions(s.Positions)
	return &out
}

func clonePositions(positions [][3]float64) [][3]float64 {
	out := make([][3]float64, len(positions))
	copy(out, positions)
	return out
}

// det3 computes the determinant of a 3x3 matrix.
func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}
