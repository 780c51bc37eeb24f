package ports

import "go.trai.ch/srcset/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds srcset.yaml starting at cwd and walking up, and returns the resolved project.
	Load(cwd string) (*domain.Project, error)
}
