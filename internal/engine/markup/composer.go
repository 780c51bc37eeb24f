// Package markup renders derivative sets as responsive image markup.
package markup

import (
	"html"
	"strconv"
	"strings"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/zerr"
)

// Composer renders <picture> fragments for derivative sets served below URLPath.
type Composer struct {
	URLPath string
}

// New creates a Composer for assets served at urlPath.
func New(urlPath string) *Composer {
	return &Composer{URLPath: domain.NormalizeURLPath(urlPath)}
}

// Compose renders set as a single-line fragment.
// Every non-fallback format becomes a <source>, most compressed first. The
// fallback format, the last one in the set, becomes the <img>, whose src is its
// largest width. A set with a single format renders as a bare <img>.
func (c *Composer) Compose(set *domain.DerivativeSet, attrs domain.Attributes) (string, error) {
	if strings.TrimSpace(attrs.Alt) == "" {
		return "", domain.NewPipelineError(domain.StageValidate, sourcePath(set),
			zerr.With(domain.ErrValidation, "reason", "alt text is required"))
	}
	if set == nil || len(set.Derivatives) == 0 {
		return "", domain.NewPipelineError(domain.StageValidate, sourcePath(set),
			zerr.With(domain.ErrValidation, "reason", "derivative set is empty"))
	}

	sizes := strings.TrimSpace(attrs.Sizes)
	if sizes == "" {
		sizes = domain.DefaultSizes
	}

	formats := set.Formats()
	fallback := formats[len(formats)-1]

	var b strings.Builder
	if len(formats) > 1 {
		b.WriteString("<picture>")
		for _, f := range formats[:len(formats)-1] {
			b.WriteString(`<source type="`)
			b.WriteString(f.MIMEType())
			b.WriteString(`"`)
			attr(&b, "srcset", c.srcset(set.ByFormat(f)))
			attr(&b, "sizes", sizes)
			b.WriteString(">")
		}
	}

	c.img(&b, set.ByFormat(fallback), attrs, sizes)

	if len(formats) > 1 {
		b.WriteString("</picture>")
	}

	return b.String(), nil
}

func (c *Composer) img(b *strings.Builder, ds []domain.Derivative, attrs domain.Attributes, sizes string) {
	largest := ds[len(ds)-1]

	b.WriteString("<img")
	attr(b, "alt", attrs.Alt)
	if attrs.Loading != "" {
		attr(b, "loading", attrs.Loading)
	}
	if attrs.Decoding != "" {
		attr(b, "decoding", attrs.Decoding)
	}
	attr(b, "src", c.url(largest))
	attr(b, "width", strconv.Itoa(largest.Width))
	attr(b, "height", strconv.Itoa(largest.Height))
	if len(ds) > 1 {
		attr(b, "srcset", c.srcset(ds))
		attr(b, "sizes", sizes)
	}
	b.WriteString(">")
}

// srcset lists ds as "url widthw" candidates. ds is already ascending by width.
func (c *Composer) srcset(ds []domain.Derivative) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = c.url(d) + " " + strconv.Itoa(d.Width) + "w"
	}
	return strings.Join(parts, ", ")
}

func (c *Composer) url(d domain.Derivative) string {
	return c.URLPath + d.FileName
}

func attr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func sourcePath(set *domain.DerivativeSet) string {
	if set == nil {
		return ""
	}
	return set.Source.Path
}
