package ports

import "go.trai.ch/srcset/internal/core/domain"

// Fingerprinter derives content-addressed identities.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Fingerprinter interface {
	// Fingerprint identifies a source buffer under a matrix version and transform list.
	Fingerprint(data []byte, matrixVersion string, specs []domain.TransformSpec) domain.Fingerprint

	// DerivativeHash returns the hex hash used in the file name of one derivative.
	DerivativeHash(fp domain.Fingerprint, spec domain.TransformSpec) string
}

// ContentHasher detects changes in files between builds.
type ContentHasher interface {
	// HashFile returns a digest of the file content.
	HashFile(path string) (string, error)
}
