package codec

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/srcset/internal/core/ports"
)

// NodeID is the unique identifier for the codec registry Graft node.
const NodeID graft.ID = "adapter.codec"

func init() {
	graft.Register(graft.Node[ports.Codecs]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Codecs, error) {
			return NewDefaultRegistry(), nil
		},
	})
}
