package ports

import "go.trai.ch/ngbuild/internal/core/domain"

// TransformStore persists transform results across processes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TransformStore interface {
	// Get retrieves the result stored under key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.TransformResult, error)

	// Put stores the result under key.
	Put(key string, result *domain.TransformResult) error
}
