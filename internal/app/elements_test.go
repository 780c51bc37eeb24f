package app_test

import (
	"html"
	"regexp"
)

var (
	tagPattern  = regexp.MustCompile(`<(source|img)\b([^>]*)>`)
	pairPattern = regexp.MustCompile(`([a-z-]+)="([^"]*)"`)
)

// element is a <source> or <img> tag of a rendered fragment.
type element struct {
	Tag   string
	Attrs map[string]string
}

// elements lists the <source> and <img> tags of a single-line fragment in
// document order, with attribute values unescaped.
func elements(fragment string) []element {
	var out []element
	for _, m := range tagPattern.FindAllStringSubmatch(fragment, -1) {
		el := element{Tag: m[1], Attrs: make(map[string]string)}
		for _, kv := range pairPattern.FindAllStringSubmatch(m[2], -1) {
			el.Attrs[kv[1]] = html.UnescapeString(kv[2])
		}
		out = append(out, el)
	}
	return out
}
