package engines

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
)

// ForceFieldEngine implements ports.ForceFieldEngine over an external
// interatomic-potential executable.
type ForceFieldEngine struct {
	runner runner
}

// NewForceFieldEngine creates a force-field engine from its configured command.
func NewForceFieldEngine(cmd domain.EngineCommand, logger ports.Logger) *ForceFieldEngine {
	return &ForceFieldEngine{
		runner: runner{task: domain.StageForceField, cmd: cmd, logger: logger},
	}
}

// Configured reports whether an engine command was provided.
func (e *ForceFieldEngine) Configured() bool {
	return e.runner.configured()
}

// Compute relaxes the structure and returns energy, forces and stress.
func (e *ForceFieldEngine) Compute(ctx context.Context, structure *domain.StructureRecord) (*domain.ForceFieldResult, error) {
	var result domain.ForceFieldResult
	req := request{Task: domain.StageForceField, Structure: structure}
	if err := e.runner.invoke(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
