// Package generator produces encoded derivatives of a source image.
package generator

import (
	"bytes"
	"context"
	"image"

	"golang.org/x/image/draw"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Generator = (*Generator)(nil)

// Generator decodes a source once, scales it once per distinct width and
// encodes every requested format. It performs no I/O.
type Generator struct {
	codecs ports.Codecs
}

// New creates a Generator backed by the given codecs.
func New(codecs ports.Codecs) *Generator {
	return &Generator{codecs: codecs}
}

// Generate produces one derivative per spec, in spec order.
// Any failing pair aborts the whole set.
func (g *Generator) Generate(
	ctx context.Context,
	src *domain.SourceImage,
	specs []domain.TransformSpec,
) (*domain.DerivativeSet, error) {
	if len(specs) == 0 {
		return nil, domain.NewPipelineError(domain.StageValidate, src.Path,
			zerr.With(domain.ErrValidation, "reason", "no transforms requested"))
	}

	encoders, err := g.encoders(specs)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageEncode, src.Path, err)
	}

	img, container, err := g.codecs.Decode(src.Data)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageDecode, src.Path, err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	for _, s := range specs {
		if s.Width <= 0 || s.Width > srcW {
			return nil, domain.NewPipelineError(domain.StageValidate, src.Path,
				zerr.With(zerr.With(domain.ErrValidation, "width", s.Width), "native", srcW))
		}
	}

	set := &domain.DerivativeSet{
		Source: domain.SourceRef{
			Path:        src.Path,
			Width:       srcW,
			Height:      srcH,
			Format:      container,
			Fingerprint: src.Fingerprint,
		},
		Derivatives: make([]domain.Derivative, 0, len(specs)),
	}

	scaled := make(map[int]image.Image)
	var buf bytes.Buffer
	for _, s := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		height := s.Height
		if height <= 0 {
			height = domain.ScaledHeight(s.Width, srcW, srcH)
		}

		resized, ok := scaled[s.Width]
		if !ok {
			resized = Scale(img, s.Width, height)
			scaled[s.Width] = resized
		}

		buf.Reset()
		if err := encoders[s.Format].Encode(&buf, resized, s.Quality); err != nil {
			return nil, domain.NewPipelineError(domain.StageEncode, src.Path,
				zerr.With(zerr.With(zerr.Wrap(err, domain.ErrEncode.Error()), "format", string(s.Format)), "width", s.Width))
		}

		data := bytes.Clone(buf.Bytes())
		set.Derivatives = append(set.Derivatives, domain.Derivative{
			Format:   s.Format,
			Width:    s.Width,
			Height:   height,
			FileName: s.FileName,
			Size:     int64(len(data)),
			Data:     data,
		})
	}

	return set, nil
}

// encoders resolves every format before any decoding work is done.
func (g *Generator) encoders(specs []domain.TransformSpec) (map[domain.Format]ports.Encoder, error) {
	encoders := make(map[domain.Format]ports.Encoder)
	for _, s := range specs {
		if _, ok := encoders[s.Format]; ok {
			continue
		}
		enc, ok := g.codecs.Encoder(s.Format)
		if !ok {
			return nil, domain.NewKindError(domain.StageEncode, domain.ErrUnsupportedFormat,
				zerr.With(domain.ErrUnsupportedFormat, "format", string(s.Format)))
		}
		encoders[s.Format] = enc
	}
	return encoders, nil
}

// Scale resizes img to width x height with Catmull-Rom resampling.
// An image already at the target size is returned as is.
func Scale(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
