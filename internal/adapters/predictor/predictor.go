// Package predictor implements the Predictor port as a registry of linear
// property models loaded from configuration. Prediction never fails hard:
// properties without a usable model are absent from the result.
package predictor

import (
	"context"
	"fmt"
	"sort"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
)

// Feature names derivable from the structure itself, always available to
// models regardless of which stages ran.
const (
	FeatureAtomCount = "atom_count"
	FeatureVolume    = "cell_volume"
	FeatureDensity   = "number_density"
)

// Registry implements ports.Predictor.
type Registry struct {
	models map[string]domain.ModelConfig
	logger ports.Logger
}

// NewRegistry creates a Registry from the configured model table.
func NewRegistry(models map[string]domain.ModelConfig, logger ports.Logger) *Registry {
	return &Registry{models: models, logger: logger}
}

// Supports reports whether a model for the given property is loaded.
func (r *Registry) Supports(property string) bool {
	_, ok := r.models[property]
	return ok
}

// Properties lists the supported properties in stable order.
func (r *Registry) Properties() []string {
	out := make([]string, 0, len(r.models))
	for property := range r.models {
		out = append(out, property)
	}
	sort.Strings(out)
	return out
}

// Predict evaluates every loaded model against the feature vector. A model
// referencing a feature that is absent is skipped with a warning rather than
// predicting from incomplete inputs.
func (r *Registry) Predict(_ context.Context, structure *domain.StructureRecord, features map[string]float64) map[string]float64 {
	if len(r.models) == 0 {
		return nil
	}

	inputs := structureFeatures(structure)
	for k, v := range features {
		inputs[k] = v
	}

	predictions := make(map[string]float64, len(r.models))
	for _, property := range r.Properties() {
		model := r.models[property]

		value, ok := evaluate(model, inputs)
		if !ok {
			r.logger.Warn(fmt.Sprintf("model %q skipped: missing input feature", property))
			continue
		}
		predictions[property] = value
	}

	if len(predictions) == 0 {
		return nil
	}
	return predictions
}

func evaluate(model domain.ModelConfig, inputs map[string]float64) (float64, bool) {
	value := model.Intercept
	for feature, weight := range model.Coefficients {
		x, ok := inputs[feature]
		if !ok {
			return 0, false
		}
		value += weight * x
	}
	return value, true
}

// structureFeatures derives the always-available features from geometry.
func structureFeatures(structure *domain.StructureRecord) map[string]float64 {
	inputs := make(map[string]float64, 3)
	if structure == nil {
		return inputs
	}

	atoms := float64(len(structure.Positions))
	volume := cellVolume(structure.Cell)

	inputs[FeatureAtomCount] = atoms
	inputs[FeatureVolume] = volume
	if volume > 0 {
		inputs[FeatureDensity] = atoms / volume
	}
	return inputs
}

func cellVolume(cell [3][3]float64) float64 {
	v := cell[0][0]*(cell[1][1]*cell[2][2]-cell[1][2]*cell[2][1]) -
		cell[0][1]*(cell[1][0]*cell[2][2]-cell[1][2]*cell[2][0]) +
		cell[0][2]*(cell[1][0]*cell[2][1]-cell[1][1]*cell[2][0])
	if v < 0 {
		return -v
	}
	return v
}
