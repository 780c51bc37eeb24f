// Package codec registers the image decoders and encoders used by the generator.
package codec

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/avif"
	xwebp "golang.org/x/image/webp"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Codecs = (*Registry)(nil)

type decoder struct {
	name         string
	match        func([]byte) bool
	decode       func([]byte) (image.Image, error)
	decodeConfig func([]byte) (image.Config, error)
}

// decoders are tried in order by sniffing the container magic.
var decoders = []decoder{
	{
		name:  "jpeg",
		match: func(b []byte) bool { return bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}) },
		decode: func(b []byte) (image.Image, error) {
			return jpeg.Decode(bytes.NewReader(b))
		},
		decodeConfig: func(b []byte) (image.Config, error) {
			return jpeg.DecodeConfig(bytes.NewReader(b))
		},
	},
	{
		name:  "png",
		match: func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) },
		decode: func(b []byte) (image.Image, error) {
			return png.Decode(bytes.NewReader(b))
		},
		decodeConfig: func(b []byte) (image.Config, error) {
			return png.DecodeConfig(bytes.NewReader(b))
		},
	},
	{
		name:  "gif",
		match: func(b []byte) bool { return bytes.HasPrefix(b, []byte("GIF8")) },
		decode: func(b []byte) (image.Image, error) {
			return gif.Decode(bytes.NewReader(b))
		},
		decodeConfig: func(b []byte) (image.Config, error) {
			return gif.DecodeConfig(bytes.NewReader(b))
		},
	},
	{
		name: "webp",
		match: func(b []byte) bool {
			return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP"
		},
		decode: func(b []byte) (image.Image, error) {
			return xwebp.Decode(bytes.NewReader(b))
		},
		decodeConfig: func(b []byte) (image.Config, error) {
			return xwebp.DecodeConfig(bytes.NewReader(b))
		},
	},
	{
		name: "avif",
		match: func(b []byte) bool {
			return len(b) >= 12 && string(b[4:8]) == "ftyp" &&
				(string(b[8:12]) == "avif" || string(b[8:12]) == "avis")
		},
		decode: func(b []byte) (image.Image, error) {
			return avif.Decode(bytes.NewReader(b))
		},
		decodeConfig: func(b []byte) (image.Config, error) {
			return avif.DecodeConfig(bytes.NewReader(b))
		},
	},
}

// Registry maps target formats to encoders and sniffs source containers.
type Registry struct {
	encoders map[domain.Format]ports.Encoder
}

// NewRegistry creates a registry holding the given encoders.
func NewRegistry(encoders ...ports.Encoder) *Registry {
	r := &Registry{encoders: make(map[domain.Format]ports.Encoder, len(encoders))}
	for _, e := range encoders {
		r.encoders[e.Format()] = e
	}
	return r
}

// NewDefaultRegistry registers an encoder for every known format.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewAVIFEncoder(),
		NewWebPEncoder(),
		NewJPEGEncoder(),
		NewPNGEncoder(),
	)
}

// Encoder returns the encoder registered for f.
func (r *Registry) Encoder(f domain.Format) (ports.Encoder, bool) {
	e, ok := r.encoders[f]
	return e, ok
}

// Decode decodes data with the decoder matching its container magic.
func (r *Registry) Decode(data []byte) (image.Image, string, error) {
	d, err := sniff(data)
	if err != nil {
		return nil, "", err
	}
	img, err := d.decode(data)
	if err != nil {
		return nil, d.name, zerr.With(zerr.Wrap(err, domain.ErrDecode.Error()), "container", d.name)
	}
	return img, d.name, nil
}

// DecodeConfig reads the dimensions from the container header.
func (r *Registry) DecodeConfig(data []byte) (image.Config, string, error) {
	d, err := sniff(data)
	if err != nil {
		return image.Config{}, "", err
	}
	cfg, err := d.decodeConfig(data)
	if err != nil {
		return image.Config{}, d.name, zerr.With(zerr.Wrap(err, domain.ErrDecode.Error()), "container", d.name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Config{}, d.name, zerr.With(zerr.With(domain.ErrDecode, "container", d.name), "reason", "empty image")
	}
	return cfg, d.name, nil
}

func sniff(data []byte) (decoder, error) {
	for _, d := range decoders {
		if d.match(data) {
			return d, nil
		}
	}
	return decoder{}, zerr.With(domain.ErrDecode, "reason", "unrecognized container")
}
