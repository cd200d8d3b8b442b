package ports

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
)

// ImagingMode selects which image formation model the imaging engine runs.
type ImagingMode string

const (
	// ImagingHighResolution is conventional high-resolution imaging.
	ImagingHighResolution ImagingMode = "high_resolution"
	// ImagingScanning is scanning-probe imaging.
	ImagingScanning ImagingMode = "scanning"
)

// ForceFieldEngine is the interatomic-potential relaxation collaborator.
// Engine parameters (potential choice, relaxation settings) are fixed at
// construction time from configuration.
//
//go:generate mockgen -source=engines.go -destination=mocks/mock_engines.go -package=mocks
type ForceFieldEngine interface {
	// Compute relaxes the structure and returns energy, forces and stress.
	// Returns an error wrapping domain.ErrComputation on failure.
	Compute(ctx context.Context, structure *domain.StructureRecord) (*domain.ForceFieldResult, error)
}

// ElectronicEngine is the electronic-structure collaborator.
type ElectronicEngine interface {
	// Compute runs the electronic-structure calculation for the structure.
	// Returns an error wrapping domain.ErrComputation on failure.
	Compute(ctx context.Context, structure *domain.StructureRecord) (*domain.ElectronicResult, error)
}

// ImagingEngine is the image-formation simulation collaborator.
type ImagingEngine interface {
	// Simulate produces one simulated image of the structure in the given mode.
	// Returns an error wrapping domain.ErrComputation on failure.
	Simulate(ctx context.Context, structure *domain.StructureRecord, mode ImagingMode) ([][]float64, error)
}

// EnergyEvaluator computes a total energy for a structure. The defect
// classifier differences a perturbed and an unperturbed structure through it
// to estimate formation energies.
type EnergyEvaluator interface {
	// Available reports whether the evaluator can produce energies at all.
	// When false, formation-energy entries stay absent instead of zero.
	Available() bool

	// TotalEnergy returns the total energy of the structure.
	TotalEnergy(ctx context.Context, structure *domain.StructureRecord) (float64, error)
}

// Predictor is the learned-property collaborator. It never fails hard:
// properties without a usable model are simply absent from the returned map.
type Predictor interface {
	// Supports reports whether a model for the given property is loaded.
	Supports(property string) bool

	// Predict returns predicted properties for the structure. The features
	// map carries outputs of earlier stages (energies, defect concentration)
	// that models may consume; it may be nil.
	Predict(ctx context.Context, structure *domain.StructureRecord, features map[string]float64) map[string]float64
}
