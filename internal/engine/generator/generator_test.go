package generator_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/srcset/internal/adapters/codec"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports/mocks"
	"go.trai.ch/srcset/internal/engine/generator"
	"go.uber.org/mock/gomock"
)

func pngSource(t *testing.T, w, h int) *domain.SourceImage {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255}) //nolint:gosec // Bounded by modulo
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &domain.SourceImage{
		Path:   "hero.png",
		Stem:   "hero",
		Data:   buf.Bytes(),
		Width:  w,
		Height: h,
		Format: "png",
	}
}

func jpegPNGMatrix() domain.Matrix {
	return domain.Matrix{
		Formats: []domain.Format{domain.FormatPNG, domain.FormatJPEG},
		Widths:  []int{40, 80, 120},
		Quality: map[domain.Format]int{domain.FormatJPEG: 80},
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	tests := []struct {
		name   string
		matrix domain.Matrix
		w, h   int
	}{
		{name: "jpeg and png", matrix: jpegPNGMatrix(), w: 100, h: 50},
		{name: "default avif webp jpeg", matrix: domain.DefaultMatrix(), w: 500, h: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := generator.New(codec.NewDefaultRegistry())
			src := pngSource(t, tt.w, tt.h)
			specs := tt.matrix.Specs(src.Width, src.Height)

			first, err := g.Generate(context.Background(), src, specs)
			require.NoError(t, err)
			second, err := g.Generate(context.Background(), src, specs)
			require.NoError(t, err)

			require.Len(t, first.Derivatives, len(second.Derivatives))
			for i := range first.Derivatives {
				assert.NotEmpty(t, first.Derivatives[i].Data)
				assert.Equal(t, first.Derivatives[i].Data, second.Derivatives[i].Data, "derivative %d differs", i)
			}
		})
	}
}

func TestGenerate_OrderAndDimensions(t *testing.T) {
	g := generator.New(codec.NewDefaultRegistry())
	src := pngSource(t, 100, 50)
	specs := jpegPNGMatrix().Specs(src.Width, src.Height)

	set, err := g.Generate(context.Background(), src, specs)
	require.NoError(t, err)

	assert.Equal(t, 100, set.Source.Width)
	assert.Equal(t, 50, set.Source.Height)
	assert.Equal(t, "png", set.Source.Format)

	type dims struct {
		f    domain.Format
		w, h int
	}
	var got []dims
	for _, d := range set.Derivatives {
		got = append(got, dims{d.Format, d.Width, d.Height})
		assert.Equal(t, int64(len(d.Data)), d.Size)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(d.Data))
		require.NoError(t, err)
		assert.Equal(t, d.Width, cfg.Width)
		assert.Equal(t, d.Height, cfg.Height)
	}

	assert.Equal(t, []dims{
		{domain.FormatPNG, 40, 20},
		{domain.FormatPNG, 80, 40},
		{domain.FormatJPEG, 40, 20},
		{domain.FormatJPEG, 80, 40},
	}, got)
}

func TestGenerate_NoUpscale(t *testing.T) {
	g := generator.New(codec.NewDefaultRegistry())
	src := pngSource(t, 30, 20)
	specs := jpegPNGMatrix().Specs(src.Width, src.Height)

	set, err := g.Generate(context.Background(), src, specs)
	require.NoError(t, err)

	for _, f := range []domain.Format{domain.FormatPNG, domain.FormatJPEG} {
		ds := set.ByFormat(f)
		require.Len(t, ds, 1, "format %s", f)
		assert.Equal(t, 30, ds[0].Width)
		assert.Equal(t, 20, ds[0].Height)
	}
}

func TestGenerate_RejectsOversizedSpec(t *testing.T) {
	g := generator.New(codec.NewDefaultRegistry())
	src := pngSource(t, 30, 20)

	_, err := g.Generate(context.Background(), src, []domain.TransformSpec{
		{Format: domain.FormatJPEG, Width: 60, Quality: 80},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerate_DecodeError(t *testing.T) {
	g := generator.New(codec.NewDefaultRegistry())
	src := &domain.SourceImage{Path: "broken.jpg", Data: []byte("not an image")}

	_, err := g.Generate(context.Background(), src, []domain.TransformSpec{
		{Format: domain.FormatJPEG, Width: 10, Quality: 80},
	})
	require.ErrorIs(t, err, domain.ErrDecode)
	assert.Contains(t, err.Error(), "broken.jpg")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	g := generator.New(codec.NewRegistry(codec.NewJPEGEncoder()))
	src := pngSource(t, 30, 20)

	_, err := g.Generate(context.Background(), src, []domain.TransformSpec{
		{Format: domain.FormatJPEG, Width: 10, Quality: 80},
		{Format: domain.FormatAVIF, Width: 10, Quality: 50},
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	require.NotErrorIs(t, err, domain.ErrEncode)
}

func TestGenerate_EncodeErrorAbortsSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := pngSource(t, 30, 20)

	failing := mocks.NewMockEncoder(ctrl)
	failing.EXPECT().Format().Return(domain.FormatWebP).AnyTimes()
	failing.EXPECT().Encode(gomock.Any(), gomock.Any(), 75).Return(errors.New("encoder crashed"))

	g := generator.New(codec.NewRegistry(codec.NewJPEGEncoder(), failing))

	set, err := g.Generate(context.Background(), src, []domain.TransformSpec{
		{Format: domain.FormatJPEG, Width: 10, Quality: 80},
		{Format: domain.FormatWebP, Width: 10, Quality: 75},
	})
	require.ErrorIs(t, err, domain.ErrEncode)
	assert.Nil(t, set)
}

func TestGenerate_ScalesEachWidthOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := pngSource(t, 50, 50)

	var seen []image.Image
	recorder := mocks.NewMockEncoder(ctrl)
	recorder.EXPECT().Format().Return(domain.FormatWebP).AnyTimes()
	recorder.EXPECT().Encode(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(w io.Writer, img image.Image, _ int) error {
			seen = append(seen, img)
			_, err := w.Write([]byte("x"))
			return err
		}).Times(2)

	jpegRecorder := mocks.NewMockEncoder(ctrl)
	jpegRecorder.EXPECT().Format().Return(domain.FormatJPEG).AnyTimes()
	jpegRecorder.EXPECT().Encode(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(w io.Writer, img image.Image, _ int) error {
			seen = append(seen, img)
			_, err := w.Write([]byte("y"))
			return err
		}).Times(2)

	g := generator.New(codec.NewRegistry(recorder, jpegRecorder))
	_, err := g.Generate(context.Background(), src, domain.Matrix{
		Formats: []domain.Format{domain.FormatWebP, domain.FormatJPEG},
		Widths:  []int{10, 20},
	}.Specs(50, 50))
	require.NoError(t, err)

	require.Len(t, seen, 4)
	assert.Same(t, seen[0], seen[2], "width 10 must be scaled once")
	assert.Same(t, seen[1], seen[3], "width 20 must be scaled once")
}

func TestGenerate_Canceled(t *testing.T) {
	g := generator.New(codec.NewDefaultRegistry())
	src := pngSource(t, 30, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, src, []domain.TransformSpec{{Format: domain.FormatJPEG, Width: 10, Quality: 80}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScale_NativeSizeIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	assert.Same(t, img, generator.Scale(img, 8, 8))

	scaled := generator.Scale(img, 4, 4)
	assert.Equal(t, image.Rect(0, 0, 4, 4), scaled.Bounds())
}
