package domain

import (
	"path/filepath"
	"strings"
)

// Project is the resolved configuration of one site build.
// All paths are absolute.
type Project struct {
	// Root is the directory containing srcset.yaml.
	Root string
	// SourceRoot is the directory image paths are resolved against.
	SourceRoot string
	// AssetRoot is the flat output directory of derivatives.
	AssetRoot string
	// URLPath is the public prefix of AssetRoot, with a trailing slash.
	URLPath string
	// Matrix is the normalized format/width matrix.
	Matrix Matrix
	// Workers bounds concurrent generations. Zero means automatic.
	Workers int
	// Pages are the collaborator pages rendered by a build.
	Pages []Page
	// DataFile is an optional YAML file exposed to page templates.
	DataFile string
}

// Page is one collaborator page: a template source and the file it renders to.
type Page struct {
	Src string
	Out string
}

// Kind classifies a page by the extension of its source, ignoring a trailing ".tmpl".
func (p Page) Kind() PageKind {
	name := strings.TrimSuffix(strings.ToLower(p.Src), ".tmpl")
	switch filepath.Ext(name) {
	case ".html", ".htm":
		return PageHTML
	case ".md", ".markdown":
		return PageMarkdown
	default:
		return PageText
	}
}

// PageKind selects the template engine of a page.
type PageKind string

const (
	// PageHTML pages are rendered with html/template.
	PageHTML PageKind = "html"
	// PageMarkdown pages are rendered with goldmark.
	PageMarkdown PageKind = "markdown"
	// PageText pages are rendered with text/template.
	PageText PageKind = "text"
)

// NormalizeURLPath ensures the URL prefix starts and ends with a slash.
func NormalizeURLPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultURLPath
	}
	if !strings.HasPrefix(p, "/") && !strings.Contains(p, "://") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
