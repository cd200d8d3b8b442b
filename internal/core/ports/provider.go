// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/matsim/internal/core/domain"
)

// StructureProvider is the external structure/property database lookup.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type StructureProvider interface {
	// GetStructure fetches the structure for an identifier.
	// Returns domain.ErrStructureNotFound when the source has no entry.
	GetStructure(ctx context.Context, identifier string) (*domain.StructureRecord, error)

	// GetProperties fetches known reference properties for an identifier.
	// Returns domain.ErrPropertiesNotFound when the source has no entry.
	GetProperties(ctx context.Context, identifier string) (map[string]float64, error)
}
