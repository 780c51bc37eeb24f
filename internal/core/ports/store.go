package ports

import (
	"context"

	"go.trai.ch/srcset/internal/core/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// DerivativeStore memoizes derivative sets per source fingerprint.
type DerivativeStore interface {
	// GetOrCreate returns the derivative set of the source image at the given path,
	// generating and persisting it on a miss. Concurrent calls for the same
	// fingerprint share one generation and receive the same set.
	GetOrCreate(ctx context.Context, sourcePath string) (*domain.DerivativeSet, error)

	// Prune drops index entries of sources not requested from this store.
	Prune()

	// Flush writes the derivative index to the asset root.
	Flush() error

	// Stats returns counters for the lifetime of the store.
	Stats() domain.StoreStats
}

// StoreFactory creates one DerivativeStore per build.
type StoreFactory interface {
	NewStore(project *domain.Project) (DerivativeStore, error)
}
