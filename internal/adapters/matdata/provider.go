package matdata

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
)

// NewProvider selects the structure provider for the configured source. A
// local directory wins over the API; with neither configured, every lookup
// reports the structure as not found.
func NewProvider(source domain.SourceConfig, logger ports.Logger) (ports.StructureProvider, error) {
	switch {
	case source.Dir != "":
		return NewLocal(source.Dir), nil
	case source.URL != "":
		return NewClient(source, logger)
	default:
		return unconfigured{}, nil
	}
}

type unconfigured struct{}

func (unconfigured) GetStructure(_ context.Context, identifier string) (*domain.StructureRecord, error) {
	err := zerr.With(domain.ErrStructureNotFound, "identifier", identifier)
	return nil, zerr.With(err, "reason", "no structure source configured")
}

func (unconfigured) GetProperties(_ context.Context, identifier string) (map[string]float64, error) {
	err := zerr.With(domain.ErrPropertiesNotFound, "identifier", identifier)
	return nil, zerr.With(err, "reason", "no structure source configured")
}
