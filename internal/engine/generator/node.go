package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/srcset/internal/adapters/codec"
	"go.trai.ch/srcset/internal/core/ports"
)

// NodeID is the unique identifier for the generator Graft node.
const NodeID graft.ID = "engine.generator"

func init() {
	graft.Register(graft.Node[ports.Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{codec.NodeID},
		Run: func(ctx context.Context) (ports.Generator, error) {
			codecs, err := graft.Dep[ports.Codecs](ctx)
			if err != nil {
				return nil, err
			}
			return New(codecs), nil
		},
	})
}
