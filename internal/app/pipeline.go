package app

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/srcset/internal/engine/markup"
	"go.trai.ch/zerr"
)

var _ ports.ImageRenderer = (*Pipeline)(nil)

// Pipeline turns an image invocation into responsive markup. It owns no
// global state: memoization lives in the store it was built with.
type Pipeline struct {
	sourceRoot string
	store      ports.DerivativeStore
	resolver   ports.SourceResolver
	composer   *markup.Composer
}

// NewPipeline creates a Pipeline for project backed by store.
func NewPipeline(project *domain.Project, store ports.DerivativeStore, resolver ports.SourceResolver) *Pipeline {
	return &Pipeline{
		sourceRoot: project.SourceRoot,
		store:      store,
		resolver:   resolver,
		composer:   markup.New(project.URLPath),
	}
}

// RenderImage returns the <picture> fragment for source. The alt text is
// validated before any file is touched. sizes defaults to 100vw.
func (p *Pipeline) RenderImage(ctx context.Context, source, alt string, sizes ...string) (string, error) {
	inv := domain.ImageInvocation{Source: source, Alt: alt}
	if len(sizes) > 0 {
		inv.Sizes = sizes[0]
	}

	if strings.TrimSpace(inv.Alt) == "" {
		return "", domain.NewPipelineError(domain.StageValidate, source,
			zerr.With(domain.ErrValidation, "reason", "alt text is required"))
	}
	if strings.TrimSpace(inv.Source) == "" {
		return "", domain.NewPipelineError(domain.StageValidate, source,
			zerr.With(domain.ErrValidation, "reason", "source path is required"))
	}

	path, err := p.resolver.Resolve(p.sourceRoot, inv.Source)
	if err != nil {
		return "", domain.NewPipelineError(domain.StageResolve, source, err)
	}

	set, err := p.store.GetOrCreate(ctx, path)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return "", err
		}
		return "", domain.NewPipelineError(domain.StageEncode, source, err)
	}

	return p.composer.Compose(set, inv.DefaultAttributes())
}
