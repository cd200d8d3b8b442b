package engines

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
)

// Evaluator implements ports.EnergyEvaluator by delegating to the force-field
// engine. It is unavailable when no force-field command is configured, in
// which case formation energies stay absent.
type Evaluator struct {
	engine *ForceFieldEngine
}

// NewEvaluator creates an Evaluator over the given force-field engine.
func NewEvaluator(engine *ForceFieldEngine) *Evaluator {
	return &Evaluator{engine: engine}
}

// Available reports whether the evaluator can produce energies.
func (e *Evaluator) Available() bool {
	return e.engine != nil && e.engine.Configured()
}

// TotalEnergy returns the relaxed total energy of the structure.
func (e *Evaluator) TotalEnergy(ctx context.Context, structure *domain.StructureRecord) (float64, error) {
	result, err := e.engine.Compute(ctx, structure)
	if err != nil {
		return 0, err
	}
	return result.Energy, nil
}
