package template

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
)

// MarkdownRenderer renders markdown pages. The source is first executed as a
// text/template, then converted with goldmark. Local images written as
// ![alt](path "sizes") become responsive picture markup.
type MarkdownRenderer struct {
	Clock Clock
}

var _ ports.PageRenderer = (*MarkdownRenderer)(nil)

// Supports reports whether page is a markdown page.
func (r *MarkdownRenderer) Supports(page domain.Page) bool {
	return page.Kind() == domain.PageMarkdown
}

// Render writes the HTML fragment of the page to w.
func (r *MarkdownRenderer) Render(
	ctx context.Context, images ports.ImageRenderer, page domain.Page, src []byte, data any, w io.Writer,
) error {
	var expanded bytes.Buffer
	if err := executeText(ctx, images, r.Clock.now(), page, src, data, &expanded); err != nil {
		return err
	}

	if err := NewMarkdown(ctx, images).Convert(expanded.Bytes(), w); err != nil {
		return renderError(err, page)
	}
	return nil
}

// NewMarkdown returns a goldmark instance whose image nodes render through images.
// Raw HTML is passed through, since pages embed template output.
func NewMarkdown(ctx context.Context, images ports.ImageRenderer) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&pictureExtension{ctx: ctx, images: images},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
}

type pictureExtension struct {
	ctx    context.Context
	images ports.ImageRenderer
}

func (e *pictureExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(e, 100)))
}

func (e *pictureExtension) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, e.renderImage)
}

func (e *pictureExtension) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n, ok := node.(*ast.Image)
	if !ok {
		return ast.WalkContinue, nil
	}

	dest := string(n.Destination)
	alt := altText(n, source)

	if remote(dest) {
		_, _ = w.WriteString(`<img src="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
		_, _ = w.WriteString(`" alt="`)
		_, _ = w.Write(util.EscapeHTML([]byte(alt)))
		_, _ = w.WriteString(`">`)
		return ast.WalkSkipChildren, nil
	}

	var sizes []string
	if len(n.Title) > 0 {
		sizes = append(sizes, string(n.Title))
	}
	out, err := e.images.RenderImage(e.ctx, dest, alt, sizes...)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	return ast.WalkSkipChildren, nil
}

func altText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(altText(c, source))
		}
	}
	return b.String()
}

func remote(dest string) bool {
	return strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, "data:")
}
