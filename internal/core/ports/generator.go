package ports

import (
	"context"
	"image"
	"io"

	"go.trai.ch/srcset/internal/core/domain"
)

//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks

// Generator produces encoded derivatives from a decoded source. It performs no I/O.
type Generator interface {
	Generate(ctx context.Context, src *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error)
}

// Encoder writes an image in one target format.
type Encoder interface {
	Format() domain.Format
	Encode(w io.Writer, img image.Image, quality int) error
}

// Codecs decodes source containers and looks up encoders by format.
type Codecs interface {
	// Decode decodes a full source image and reports its container name.
	Decode(data []byte) (image.Image, string, error)
	// DecodeConfig reads only the container header.
	DecodeConfig(data []byte) (image.Config, string, error)
	// Encoder returns the encoder registered for f.
	Encoder(f domain.Format) (Encoder, bool)
}
