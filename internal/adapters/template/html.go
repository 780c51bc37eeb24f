package template

import (
	"context"
	htmltemplate "html/template"
	"io"
	"path/filepath"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

// HTMLRenderer renders .html pages with html/template.
type HTMLRenderer struct {
	Clock Clock
}

var _ ports.PageRenderer = (*HTMLRenderer)(nil)

// Supports reports whether page is an HTML page.
func (r *HTMLRenderer) Supports(page domain.Page) bool {
	return page.Kind() == domain.PageHTML
}

// Render executes src as an html/template.
func (r *HTMLRenderer) Render(
	ctx context.Context, images ports.ImageRenderer, page domain.Page, src []byte, data any, w io.Writer,
) error {
	tmpl, err := htmltemplate.New(filepath.Base(page.Src)).
		Funcs(HTMLFuncs(ctx, images, r.Clock.now())).
		Parse(string(src))
	if err != nil {
		return renderError(err, page)
	}
	if err := tmpl.Execute(w, Context{Data: data, Page: page}); err != nil {
		return renderError(err, page)
	}
	return nil
}

func renderError(err error, page domain.Page) error {
	return zerr.With(zerr.Wrap(err, domain.ErrPageRenderFailed.Error()), "page", page.Src)
}
