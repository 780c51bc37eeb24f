package template

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/srcset/internal/core/ports"
)

// NodeID is the graft node of the page renderers.
const NodeID graft.ID = "adapter.template"

// Renderers returns one renderer per page syntax.
func Renderers(clock Clock) []ports.PageRenderer {
	return []ports.PageRenderer{
		&HTMLRenderer{Clock: clock},
		&MarkdownRenderer{Clock: clock},
		&TextRenderer{Clock: clock},
	}
}

func init() {
	graft.Register(graft.Node[[]ports.PageRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) ([]ports.PageRenderer, error) {
			return Renderers(nil), nil
		},
	})
}
