package engines

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
)

// ElectronicEngine implements ports.ElectronicEngine over an external
// electronic-structure executable.
type ElectronicEngine struct {
	runner runner
}

// NewElectronicEngine creates an electronic-structure engine from its
// configured command.
func NewElectronicEngine(cmd domain.EngineCommand, logger ports.Logger) *ElectronicEngine {
	return &ElectronicEngine{
		runner: runner{task: domain.StageElectronic, cmd: cmd, logger: logger},
	}
}

// Configured reports whether an engine command was provided.
func (e *ElectronicEngine) Configured() bool {
	return e.runner.configured()
}

// Compute runs the electronic-structure calculation for the structure.
func (e *ElectronicEngine) Compute(ctx context.Context, structure *domain.StructureRecord) (*domain.ElectronicResult, error) {
	var result domain.ElectronicResult
	req := request{Task: domain.StageElectronic, Structure: structure}
	if err := e.runner.invoke(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
