package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/srcset/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/template"  //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/srcset/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			template.NodeID,
			logger.NodeID,
			telemetry.SummaryNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	stores, err := graft.Dep[ports.StoreFactory](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.SourceResolver](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.ContentHasher](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[ports.FileWalker](ctx)
	if err != nil {
		return nil, err
	}
	renderers, err := graft.Dep[[]ports.PageRenderer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	summary, err := graft.Dep[*telemetry.Summary](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, stores, resolver, renderers, log, summary).WithWatch(w, hasher, walker), nil
}
