package ports

import "go.trai.ch/ngbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project file found from cwd and applies the named configuration.
	// An empty configuration name applies no overlay.
	Load(cwd, configuration string) (*domain.Project, error)

	// DiscoverRoot walks up from cwd to find the directory containing ngbuild.yaml.
	DiscoverRoot(cwd string) (string, error)
}
