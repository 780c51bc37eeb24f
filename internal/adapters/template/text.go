package template

import (
	"context"
	"io"
	"path/filepath"
	texttemplate "text/template"
	"time"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
)

// TextRenderer renders any other page with text/template. Output is not escaped.
type TextRenderer struct {
	Clock Clock
}

var _ ports.PageRenderer = (*TextRenderer)(nil)

// Supports reports whether page is neither HTML nor markdown.
func (r *TextRenderer) Supports(page domain.Page) bool {
	return page.Kind() == domain.PageText
}

// Render executes src as a text/template.
func (r *TextRenderer) Render(
	ctx context.Context, images ports.ImageRenderer, page domain.Page, src []byte, data any, w io.Writer,
) error {
	return executeText(ctx, images, r.Clock.now(), page, src, data, w)
}

func executeText(
	ctx context.Context, images ports.ImageRenderer, now time.Time, page domain.Page, src []byte, data any, w io.Writer,
) error {
	tmpl, err := texttemplate.New(filepath.Base(page.Src)).
		Funcs(TextFuncs(ctx, images, now)).
		Parse(string(src))
	if err != nil {
		return renderError(err, page)
	}
	if err := tmpl.Execute(w, Context{Data: data, Page: page}); err != nil {
		return renderError(err, page)
	}
	return nil
}
