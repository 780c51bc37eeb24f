package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// CodecRevision is mixed into every matrix version. Bump it whenever a
// change to scaling or encoding would alter output bytes for the same input.
const CodecRevision = 1

// DefaultQuality is used for formats without an explicit quality setting.
const DefaultQuality = 80

// DefaultSizes is the sizes hint used when the caller supplies none.
const DefaultSizes = "100vw"

// Matrix is the cross-product of target formats and widths applied to every source image.
// Formats are ordered by preference, most compressed first. Widths are ascending.
type Matrix struct {
	Formats []Format
	Widths  []int
	Quality map[Format]int
}

// DefaultMatrix returns the matrix used when the configuration does not override it.
func DefaultMatrix() Matrix {
	return Matrix{
		Formats: []Format{FormatAVIF, FormatWebP, FormatJPEG},
		Widths:  []int{400, 800, 1200},
		Quality: map[Format]int{
			FormatAVIF: 50,
			FormatWebP: 75,
			FormatJPEG: 80,
		},
	}
}

// Normalize returns a copy with widths sorted ascending and deduplicated, and
// formats stably ordered by tier so the fallback tier comes last.
func (m Matrix) Normalize() Matrix {
	widths := slices.Clone(m.Widths)
	slices.Sort(widths)
	widths = slices.Compact(widths)

	formats := slices.Clone(m.Formats)
	slices.SortStableFunc(formats, func(a, b Format) int {
		return int(a.Tier()) - int(b.Tier())
	})

	quality := make(map[Format]int, len(m.Quality))
	for f, q := range m.Quality {
		quality[f] = q
	}

	return Matrix{
		Formats: formats,
		Widths:  widths,
		Quality: quality,
	}
}

// Validate checks that the matrix can produce at least one derivative per format.
func (m Matrix) Validate() error {
	if len(m.Formats) == 0 {
		return zerr.With(ErrInvalidMatrix, "reason", "no formats")
	}
	if len(m.Widths) == 0 {
		return zerr.With(ErrInvalidMatrix, "reason", "no widths")
	}

	seen := make(map[Format]bool, len(m.Formats))
	for _, f := range m.Formats {
		if !f.Known() {
			return zerr.With(ErrInvalidMatrix, "format", string(f))
		}
		if seen[f] {
			return zerr.With(zerr.With(ErrInvalidMatrix, "reason", "duplicate format"), "format", string(f))
		}
		seen[f] = true
	}

	for _, w := range m.Widths {
		if w <= 0 {
			return zerr.With(zerr.With(ErrInvalidMatrix, "reason", "width must be positive"), "width", w)
		}
	}

	for f, q := range m.Quality {
		if q < 1 || q > 100 {
			return zerr.With(zerr.With(ErrInvalidMatrix, "reason", "quality out of range"), "format", string(f))
		}
	}

	return nil
}

// QualityFor returns the configured quality of a format, or DefaultQuality.
func (m Matrix) QualityFor(f Format) int {
	if q, ok := m.Quality[f]; ok {
		return q
	}
	return DefaultQuality
}

// Fallback returns the least compressed format, used for the plain <img> element.
func (m Matrix) Fallback() Format {
	if len(m.Formats) == 0 {
		return ""
	}
	return m.Formats[len(m.Formats)-1]
}

// CapWidths returns the ascending widths not exceeding native.
// If every configured width is larger than native, native is the only entry,
// so each format still yields one derivative.
func (m Matrix) CapWidths(native int) []int {
	widths := make([]int, 0, len(m.Widths))
	for _, w := range m.Widths {
		if w <= native {
			widths = append(widths, w)
		}
	}
	slices.Sort(widths)
	widths = slices.Compact(widths)

	if len(widths) == 0 && native > 0 {
		return []int{native}
	}
	return widths
}

// Specs expands the matrix for a source of the given dimensions.
// Order is format preference first, ascending width second.
func (m Matrix) Specs(srcWidth, srcHeight int) []TransformSpec {
	widths := m.CapWidths(srcWidth)
	specs := make([]TransformSpec, 0, len(widths)*len(m.Formats))
	for _, f := range m.Formats {
		for _, w := range widths {
			specs = append(specs, TransformSpec{
				Format:  f,
				Width:   w,
				Height:  ScaledHeight(w, srcWidth, srcHeight),
				Quality: m.QualityFor(f),
			})
		}
	}
	return specs
}

// Version is a stable identifier of the matrix configuration and codec revision.
func (m Matrix) Version() string {
	n := m.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "rev=%d;", CodecRevision)
	for _, f := range n.Formats {
		fmt.Fprintf(&b, "f=%s:%d;", f, n.QualityFor(f))
	}
	for _, w := range n.Widths {
		fmt.Fprintf(&b, "w=%d;", w)
	}

	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// ScaledHeight preserves the aspect ratio of srcWidth x srcHeight at the target width,
// rounding half up. The result is never below one pixel.
func ScaledHeight(width, srcWidth, srcHeight int) int {
	if srcWidth <= 0 {
		return 0
	}
	h := (2*width*srcHeight + srcWidth) / (2 * srcWidth)
	if h < 1 {
		return 1
	}
	return h
}
