package engines

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
)

// ImagingEngine implements ports.ImagingEngine over an external
// image-formation executable.
type ImagingEngine struct {
	runner runner
}

// NewImagingEngine creates an imaging engine from its configured command.
func NewImagingEngine(cmd domain.EngineCommand, logger ports.Logger) *ImagingEngine {
	return &ImagingEngine{
		runner: runner{task: domain.StageImaging, cmd: cmd, logger: logger},
	}
}

// Configured reports whether an engine command was provided.
func (e *ImagingEngine) Configured() bool {
	return e.runner.configured()
}

// Simulate produces one simulated image of the structure in the given mode.
func (e *ImagingEngine) Simulate(ctx context.Context, structure *domain.StructureRecord, mode ports.ImagingMode) ([][]float64, error) {
	var result struct {
		Image [][]float64 `json:"image"`
	}
	req := request{Task: domain.StageImaging, Mode: string(mode), Structure: structure}
	if err := e.runner.invoke(ctx, req, &result); err != nil {
		return nil, err
	}
	return result.Image, nil
}
