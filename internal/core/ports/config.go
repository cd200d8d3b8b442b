package ports

import "go.trai.ch/matsim/internal/core/domain"

// ConfigLoader discovers and parses the matsim configuration.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd looking for matsim.yaml and returns the resolved
	// configuration. When no file exists, a default configuration rooted at
	// cwd is returned.
	Load(cwd string) (*domain.Config, error)
}
