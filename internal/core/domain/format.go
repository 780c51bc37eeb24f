package domain

import "strings"

// Format identifies an output image encoding.
type Format string

const (
	// FormatAVIF is the next-gen format.
	FormatAVIF Format = "avif"
	// FormatWebP is the modern format.
	FormatWebP Format = "webp"
	// FormatJPEG is the universal fallback format.
	FormatJPEG Format = "jpeg"
	// FormatPNG is the lossless fallback format.
	FormatPNG Format = "png"
)

// Tier groups formats by browser support.
type Tier int

const (
	// TierNextGen covers formats with the best compression and the narrowest support.
	TierNextGen Tier = iota
	// TierModern covers formats supported by every current browser.
	TierModern
	// TierFallback covers formats every consumer understands.
	TierFallback
)

// ParseFormat maps a configuration name to a Format.
// "jpg" is accepted as an alias of "jpeg".
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "avif":
		return FormatAVIF, true
	case "webp":
		return FormatWebP, true
	case "jpeg", "jpg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	default:
		return "", false
	}
}

// Tier reports the support tier of the format.
func (f Format) Tier() Tier {
	switch f {
	case FormatAVIF:
		return TierNextGen
	case FormatWebP:
		return TierModern
	default:
		return TierFallback
	}
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return string(f)
}

// MIMEType returns the media type used in <source type="...">.
func (f Format) MIMEType() string {
	return "image/" + string(f)
}

// Known reports whether the format is one of the supported constants.
func (f Format) Known() bool {
	switch f {
	case FormatAVIF, FormatWebP, FormatJPEG, FormatPNG:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	return string(f)
}
