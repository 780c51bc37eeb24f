package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/srcset/internal/adapters/codec"
	"go.trai.ch/srcset/internal/adapters/fs"
	"go.trai.ch/srcset/internal/adapters/logger"
	"go.trai.ch/srcset/internal/adapters/telemetry"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/srcset/internal/engine/generator"
)

// NodeID is the unique identifier for the derivative store factory Graft node.
const NodeID graft.ID = "adapter.derivative_store"

var _ ports.StoreFactory = (*Factory)(nil)

// Factory creates one Store per build from the shared generator and codecs.
type Factory struct {
	Generator     ports.Generator
	Codecs        ports.Codecs
	Fingerprinter ports.Fingerprinter
	Tracer        ports.Tracer
	Logger        ports.Logger
}

// NewStore creates a Store for the project's asset root and matrix.
func (f *Factory) NewStore(project *domain.Project) (ports.DerivativeStore, error) {
	return NewStore(Options{
		AssetRoot: project.AssetRoot,
		Matrix:    project.Matrix,
		Workers:   project.Workers,
	}, f.Generator, f.Codecs, f.Fingerprinter, f.Tracer, f.Logger)
}

func init() {
	graft.Register(graft.Node[ports.StoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			generator.NodeID,
			codec.NodeID,
			fs.FingerprinterNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.StoreFactory, error) {
			gen, err := graft.Dep[ports.Generator](ctx)
			if err != nil {
				return nil, err
			}
			codecs, err := graft.Dep[ports.Codecs](ctx)
			if err != nil {
				return nil, err
			}
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Factory{
				Generator:     gen,
				Codecs:        codecs,
				Fingerprinter: fingerprinter,
				Tracer:        tracer,
				Logger:        log,
			}, nil
		},
	})
}
