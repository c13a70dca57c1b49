package ports

import "go.trai.ch/ngbuild/internal/core/domain"

// AssetResolver expands asset entries into the files they copy.
//
//go:generate mockgen -source=assets.go -destination=mocks/mock_assets.go -package=mocks
type AssetResolver interface {
	// Resolve returns the copies for assets, with sources relative to root
	// resolved and destinations inside outDir.
	Resolve(root, outDir string, assets []domain.Asset) ([]domain.AssetCopy, error)
}
