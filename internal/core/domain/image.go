package domain

import (
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Fingerprint identifies a source image together with its transform parameters.
type Fingerprint [32]byte

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, for logs.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:6])
}

// SourceImage is an immutable reference to a source image buffer.
// Width, Height and Format come from the container header.
type SourceImage struct {
	Path        string
	Stem        string
	Data        []byte
	Width       int
	Height      int
	Format      string
	Fingerprint Fingerprint
}

// TransformSpec describes one derivative to produce.
type TransformSpec struct {
	Format   Format
	Width    int
	Height   int
	Quality  int
	FileName string
}

// Derivative is one encoded, resized copy of a source image.
// Data is only populated between generation and persistence.
type Derivative struct {
	Format   Format `cbor:"1,keyasint"`
	Width    int    `cbor:"2,keyasint"`
	Height   int    `cbor:"3,keyasint"`
	FileName string `cbor:"4,keyasint"`
	Size     int64  `cbor:"5,keyasint"`
	Data     []byte `cbor:"-"`
}

// SourceRef is the metadata of the source a DerivativeSet was produced from.
type SourceRef struct {
	Path        string      `cbor:"1,keyasint"`
	Width       int         `cbor:"2,keyasint"`
	Height      int         `cbor:"3,keyasint"`
	Format      string      `cbor:"4,keyasint"`
	Fingerprint Fingerprint `cbor:"5,keyasint"`
}

// DerivativeSet is the ordered collection of derivatives for one source image.
// Derivatives are grouped by format in matrix preference order, ascending by width.
// A set handed out by the store is shared and must be treated as read-only.
type DerivativeSet struct {
	Source      SourceRef    `cbor:"1,keyasint"`
	Derivatives []Derivative `cbor:"2,keyasint"`
}

// Formats returns the formats present in the set, in insertion order.
func (s *DerivativeSet) Formats() []Format {
	var formats []Format
	seen := make(map[Format]bool)
	for _, d := range s.Derivatives {
		if !seen[d.Format] {
			seen[d.Format] = true
			formats = append(formats, d.Format)
		}
	}
	return formats
}

// ByFormat returns the derivatives of one format, in insertion order.
func (s *DerivativeSet) ByFormat(f Format) []Derivative {
	var out []Derivative
	for _, d := range s.Derivatives {
		if d.Format == f {
			out = append(out, d)
		}
	}
	return out
}

// TotalSize is the sum of the encoded sizes of all derivatives.
func (s *DerivativeSet) TotalSize() int64 {
	var total int64
	for _, d := range s.Derivatives {
		total += d.Size
	}
	return total
}

// ImageInvocation is a single request from the templating layer.
type ImageInvocation struct {
	Source string
	Alt    string
	Sizes  string
}

// Attributes are the caller-supplied attributes of the rendered markup.
type Attributes struct {
	Alt      string
	Sizes    string
	Loading  string
	Decoding string
}

// DefaultAttributes returns the attributes used for an invocation, filling in
// the sizes, loading and decoding defaults.
func (inv ImageInvocation) DefaultAttributes() Attributes {
	sizes := strings.TrimSpace(inv.Sizes)
	if sizes == "" {
		sizes = DefaultSizes
	}
	return Attributes{
		Alt:      inv.Alt,
		Sizes:    sizes,
		Loading:  "lazy",
		Decoding: "async",
	}
}

// FileStem returns a URL-safe stem for derivative file names.
// Characters outside [A-Za-z0-9_-] are replaced with '-'.
func FileStem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	stem := strings.Trim(b.String(), "-")
	if stem == "" {
		return "image"
	}
	return stem
}
