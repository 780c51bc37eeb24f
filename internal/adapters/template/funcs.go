// Package template renders collaborator pages with html/template, text/template
// or goldmark, binding the image function and structured-data helpers.
package template

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"time"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/srcset/internal/structured"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Context is the dot value of every page template.
type Context struct {
	// Data is the decoded site data file, or nil.
	Data any
	// Page is the page being rendered.
	Page domain.Page
}

// Clock returns the build time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// helpers are the functions shared by every syntax.
func helpers(now time.Time) map[string]any {
	return map[string]any{
		"stars": func(v any) (string, error) {
			r, err := number(v)
			return structured.Stars(r), err
		},
		"tel":          structured.Tel,
		"currentYear":  func() int { return structured.CurrentYear(now) },
		"openingHours": openingHours,
		"reviews": func(v any) ([]structured.Review, error) {
			return reviews(v, now)
		},
	}
}

// TextFuncs returns the text/template function map.
func TextFuncs(ctx context.Context, images ports.ImageRenderer, now time.Time) map[string]any {
	funcs := helpers(now)
	funcs["image"] = func(src, alt string, sizes ...string) (string, error) {
		return images.RenderImage(ctx, src, alt, sizes...)
	}
	funcs["json"] = structured.JSON
	return funcs
}

// HTMLFuncs returns the html/template function map. Image markup and JSON-LD
// are marked safe so they are not escaped again.
func HTMLFuncs(ctx context.Context, images ports.ImageRenderer, now time.Time) htmltemplate.FuncMap {
	funcs := helpers(now)
	funcs["image"] = func(src, alt string, sizes ...string) (htmltemplate.HTML, error) {
		out, err := images.RenderImage(ctx, src, alt, sizes...)
		//nolint:gosec // fragment attributes are escaped by the composer
		return htmltemplate.HTML(out), err
	}
	funcs["json"] = func(v any) (htmltemplate.JS, error) {
		out, err := structured.JSON(v)
		//nolint:gosec // encoding/json escapes <, > and &
		return htmltemplate.JS(out), err
	}
	return funcs
}

func openingHours(v any) ([]structured.OpeningHoursSpecification, error) {
	var entries []structured.OpeningHoursEntry
	if err := remarshal(v, &entries); err != nil {
		return nil, err
	}
	return structured.OpeningHours(entries), nil
}

func reviews(v any, now time.Time) ([]structured.Review, error) {
	var entries []structured.ReviewEntry
	if err := remarshal(v, &entries); err != nil {
		return nil, err
	}
	return structured.Reviews(entries, now), nil
}

// remarshal converts generic site data into typed entries through YAML.
func remarshal(v any, target any) error {
	if v == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDataLoadFailed.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrDataLoadFailed.Error())
	}
	return nil
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "value", n)
		}
		return f, nil
	default:
		return 0, zerr.With(domain.ErrDataLoadFailed, "type", fmt.Sprintf("%T", v))
	}
}
