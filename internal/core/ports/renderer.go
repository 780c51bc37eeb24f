package ports

import (
	"context"
	"io"

	"go.trai.ch/srcset/internal/core/domain"
)

//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks

// ImageRenderer renders the responsive markup fragment of one source image.
type ImageRenderer interface {
	RenderImage(ctx context.Context, source, alt string, sizes ...string) (string, error)
}

// PageRenderer renders one collaborator page with the image function bound to images.
type PageRenderer interface {
	// Supports reports whether the renderer handles the page source.
	Supports(page domain.Page) bool
	// Render executes the page template and writes the result to w.
	Render(ctx context.Context, images ImageRenderer, page domain.Page, src []byte, data any, w io.Writer) error
}
