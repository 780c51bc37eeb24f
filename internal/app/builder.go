package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// rendered is the output of one page, held until every page succeeded.
type rendered struct {
	page domain.Page
	out  []byte
}

func (a *App) build(ctx context.Context, project *domain.Project) (*BuildResult, error) {
	if a.summary != nil {
		a.summary.Reset()
	}
	start := time.Now()

	store, err := a.stores.NewStore(project)
	if err != nil {
		return nil, err
	}

	data, err := loadData(project.DataFile)
	if err != nil {
		return nil, err
	}

	pipeline := NewPipeline(project, store, a.resolver)
	pages, renderErr := a.renderPages(ctx, pipeline, project.Pages, data)

	// Only a complete build knows which sources are still referenced.
	if renderErr == nil {
		store.Prune()
	}

	// Derivatives written before a failure stay valid, so the index is saved either way.
	if err := store.Flush(); err != nil {
		if renderErr != nil {
			a.logger.Warn("derivative index not saved: " + err.Error())
		} else {
			return nil, err
		}
	}
	if renderErr != nil {
		return nil, renderErr
	}

	if err := writePages(pages); err != nil {
		return nil, err
	}

	result := &BuildResult{Pages: len(pages), Stats: store.Stats()}
	if a.summary != nil {
		result.Summary = a.summary.Snapshot()
		a.logger.Info(fmt.Sprintf("built %d pages: %s", result.Pages, result.Summary))
	} else {
		a.logger.Info(fmt.Sprintf("built %d pages: %d images (%d generated, %d cached) in %s",
			result.Pages, result.Stats.Requests(), result.Stats.Generated, result.Stats.Cached,
			time.Since(start).Round(time.Millisecond)))
	}
	return result, nil
}

// renderPages renders all pages concurrently. The first failure cancels the rest.
func (a *App) renderPages(
	ctx context.Context, images ports.ImageRenderer, pages []domain.Page, data any,
) ([]rendered, error) {
	out := make([]rendered, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	for i, page := range pages {
		g.Go(func() error {
			renderer, err := a.rendererFor(page)
			if err != nil {
				return err
			}

			// #nosec G304 -- page sources come from the project configuration
			src, err := os.ReadFile(page.Src)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrPageRenderFailed.Error()), "page", page.Src)
			}

			var buf bytes.Buffer
			if err := renderer.Render(ctx, images, page, src, data, &buf); err != nil {
				return err
			}
			out[i] = rendered{page: page, out: buf.Bytes()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *App) rendererFor(page domain.Page) (ports.PageRenderer, error) {
	for _, r := range a.renderers {
		if r.Supports(page) {
			return r, nil
		}
	}
	return nil, zerr.With(zerr.With(domain.ErrPageRenderFailed, "reason", "no renderer for page"), "page", page.Src)
}

func writePages(pages []rendered) error {
	for _, p := range pages {
		if err := os.MkdirAll(filepath.Dir(p.page.Out), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "page", p.page.Out)
		}
		if err := os.WriteFile(p.page.Out, p.out, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "page", p.page.Out)
		}
	}
	return nil
}

// loadData decodes the optional site data file. An empty path yields nil.
func loadData(path string) (any, error) {
	if path == "" {
		return nil, nil
	}

	// #nosec G304 -- the data file comes from the project configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "path", path)
	}

	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "path", path)
	}
	return data, nil
}
