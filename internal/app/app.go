// Package app implements the application layer for srcset.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/srcset/internal/adapters/telemetry"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

// App wires configuration, the derivative store and page renderers into the
// build, image, watch and clean use cases.
type App struct {
	configLoader ports.ConfigLoader
	stores       ports.StoreFactory
	resolver     ports.SourceResolver
	renderers    []ports.PageRenderer
	logger       ports.Logger
	summary      *telemetry.Summary
	watcher      ports.Watcher
	hasher       ports.ContentHasher
	walker       ports.FileWalker
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	stores ports.StoreFactory,
	resolver ports.SourceResolver,
	renderers []ports.PageRenderer,
	log ports.Logger,
	summary *telemetry.Summary,
) *App {
	return &App{
		configLoader: loader,
		stores:       stores,
		resolver:     resolver,
		renderers:    renderers,
		logger:       log,
		summary:      summary,
	}
}

// WithWatch adds the collaborators needed by Watch.
func (a *App) WithWatch(w ports.Watcher, hasher ports.ContentHasher, walker ports.FileWalker) *App {
	a.watcher = w
	a.hasher = hasher
	a.walker = walker
	return a
}

// WithDebounce overrides the quiet period of Watch.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Options are shared by every command.
type Options struct {
	// Config is an explicit srcset.yaml path or a directory to search from.
	// Empty means the working directory.
	Config string
}

// BuildResult reports what one build did.
type BuildResult struct {
	Pages   int
	Stats   domain.StoreStats
	Summary telemetry.SummaryStats
}

// Build renders every configured page and writes the derivatives they reference.
func (a *App) Build(ctx context.Context, opts Options) (*BuildResult, error) {
	project, err := a.load(opts)
	if err != nil {
		return nil, err
	}
	return a.build(ctx, project)
}

// ImageOptions configure a single image render.
type ImageOptions struct {
	Options
	Source string
	Alt    string
	Sizes  string
}

// RenderImage renders the markup of one image, generating its derivatives.
func (a *App) RenderImage(ctx context.Context, opts ImageOptions) (string, error) {
	project, err := a.load(opts.Options)
	if err != nil {
		return "", err
	}

	store, err := a.stores.NewStore(project)
	if err != nil {
		return "", err
	}

	var sizes []string
	if opts.Sizes != "" {
		sizes = append(sizes, opts.Sizes)
	}
	out, err := NewPipeline(project, store, a.resolver).RenderImage(ctx, opts.Source, opts.Alt, sizes...)
	if err != nil {
		return "", err
	}
	return out, store.Flush()
}

// Clean removes the asset root, including the derivative index.
func (a *App) Clean(_ context.Context, opts Options) error {
	project, err := a.load(opts)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removing %s...", project.AssetRoot))
	if err := os.RemoveAll(project.AssetRoot); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", project.AssetRoot)
	}
	a.logger.Info(fmt.Sprintf("removed %s", project.AssetRoot))
	return nil
}

func (a *App) load(opts Options) (*domain.Project, error) {
	path := opts.Config
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		}
		path = cwd
	}

	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// isCanceled reports whether err only reflects ctx being done.
func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
