package codec

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	"go.trai.ch/srcset/internal/core/domain"
)

// avifSpeed trades encode time for size. 0 is slowest, 10 fastest.
const avifSpeed = 6

// webpMethod trades encode time for size. 0 is fastest, 6 slowest.
const webpMethod = 4

// JPEGEncoder encodes baseline JPEG.
type JPEGEncoder struct{}

// NewJPEGEncoder creates a new JPEGEncoder.
func NewJPEGEncoder() *JPEGEncoder { return &JPEGEncoder{} }

// Format returns domain.FormatJPEG.
func (e *JPEGEncoder) Format() domain.Format { return domain.FormatJPEG }

// Encode writes img as JPEG.
func (e *JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// PNGEncoder encodes lossless PNG. Quality is ignored.
type PNGEncoder struct {
	enc png.Encoder
}

// NewPNGEncoder creates a new PNGEncoder using the best compression level.
func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{enc: png.Encoder{CompressionLevel: png.BestCompression}}
}

// Format returns domain.FormatPNG.
func (e *PNGEncoder) Format() domain.Format { return domain.FormatPNG }

// Encode writes img as PNG.
func (e *PNGEncoder) Encode(w io.Writer, img image.Image, _ int) error {
	return e.enc.Encode(w, img)
}

// WebPEncoder encodes lossy WebP.
type WebPEncoder struct{}

// NewWebPEncoder creates a new WebPEncoder.
func NewWebPEncoder() *WebPEncoder { return &WebPEncoder{} }

// Format returns domain.FormatWebP.
func (e *WebPEncoder) Format() domain.Format { return domain.FormatWebP }

// Encode writes img as WebP.
func (e *WebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, webp.Options{
		Quality: quality,
		Method:  webpMethod,
	})
}

// AVIFEncoder encodes AVIF with 4:2:0 chroma subsampling.
type AVIFEncoder struct{}

// NewAVIFEncoder creates a new AVIFEncoder.
func NewAVIFEncoder() *AVIFEncoder { return &AVIFEncoder{} }

// Format returns domain.FormatAVIF.
func (e *AVIFEncoder) Format() domain.Format { return domain.FormatAVIF }

// Encode writes img as AVIF.
func (e *AVIFEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return avif.Encode(w, img, avif.Options{
		Quality:           quality,
		QualityAlpha:      quality,
		Speed:             avifSpeed,
		ChromaSubsampling: image.YCbCrSubsampleRatio420,
	})
}
