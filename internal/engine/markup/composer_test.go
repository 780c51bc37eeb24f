package markup_test

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/engine/markup"
)

func derivatives(stem string, formats []domain.Format, widths ...int) *domain.DerivativeSet {
	set := &domain.DerivativeSet{Source: domain.SourceRef{Path: "/site/images/" + stem + ".jpg", Width: 1600, Height: 900}}
	for _, f := range formats {
		for _, w := range widths {
			set.Derivatives = append(set.Derivatives, domain.Derivative{
				Format:   f,
				Width:    w,
				Height:   domain.ScaledHeight(w, 1600, 900),
				FileName: domain.DerivativeName(stem, fmt.Sprintf("%c%09d", f[0], w), f),
			})
		}
	}
	return set
}

func TestComposer_Compose(t *testing.T) {
	all := []domain.Format{domain.FormatAVIF, domain.FormatWebP, domain.FormatJPEG}

	tests := []struct {
		name    string
		urlPath string
		set     *domain.DerivativeSet
		attrs   domain.Attributes
	}{
		{
			name:    "picture",
			urlPath: "/assets/",
			set:     derivatives("hero", all, 400, 800, 1200),
			attrs:   domain.ImageInvocation{Alt: "Store front", Sizes: "(min-width: 800px) 50vw, 100vw"}.DefaultAttributes(),
		},
		{
			name:    "single_format",
			urlPath: "img",
			set:     derivatives("logo", []domain.Format{domain.FormatPNG}, 64, 128),
			attrs:   domain.Attributes{Alt: "Logo"},
		},
		{
			name:    "single_width",
			urlPath: "/assets/",
			set:     derivatives("icon", []domain.Format{domain.FormatWebP, domain.FormatJPEG}, 32),
			attrs:   domain.ImageInvocation{Alt: "Icon"}.DefaultAttributes(),
		},
		{
			name:    "escaped",
			urlPath: "/assets/",
			set:     derivatives("team", []domain.Format{domain.FormatJPEG}, 400, 800),
			attrs:   domain.Attributes{Alt: `Tom & "Jerry" <3`, Sizes: "100vw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := markup.New(tt.urlPath).Compose(tt.set, tt.attrs)
			require.NoError(t, err)
			assert.NotContains(t, out, "\n")

			g := goldie.New(t)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestComposer_Compose_RoundTrip(t *testing.T) {
	set := derivatives("hero", []domain.Format{domain.FormatAVIF, domain.FormatWebP, domain.FormatJPEG}, 400, 800, 1200)

	out, err := markup.New("/assets/").Compose(set, domain.ImageInvocation{Alt: "Hero"}.DefaultAttributes())
	require.NoError(t, err)

	elements := elements(out)
	require.Len(t, elements, 3)

	for i, f := range set.Formats() {
		el := elements[i]
		candidates, err := markup.ParseSrcset(el.Attrs["srcset"])
		require.NoError(t, err)

		want := set.ByFormat(f)
		require.Len(t, candidates, len(want))
		for j, c := range candidates {
			assert.Equal(t, "/assets/"+want[j].FileName, c.URL)
			assert.Equal(t, want[j].Width, c.Width)
		}
	}

	assert.Equal(t, "source", elements[0].Tag)
	assert.Equal(t, "image/avif", elements[0].Attrs["type"])
	assert.Equal(t, "image/webp", elements[1].Attrs["type"])

	img := elements[2]
	assert.Equal(t, "img", img.Tag)
	assert.Equal(t, "Hero", img.Attrs["alt"])
	assert.Equal(t, "100vw", img.Attrs["sizes"])
	assert.Equal(t, "/assets/hero-j000001200.jpeg", img.Attrs["src"])
	assert.Equal(t, "1200", img.Attrs["width"])
	assert.Equal(t, "675", img.Attrs["height"])
}

func TestComposer_Compose_Errors(t *testing.T) {
	c := markup.New("/assets/")
	set := derivatives("hero", []domain.Format{domain.FormatJPEG}, 400)

	tests := []struct {
		name string
		set  *domain.DerivativeSet
		alt  string
	}{
		{name: "empty alt", set: set, alt: ""},
		{name: "blank alt", set: set, alt: "  \t"},
		{name: "nil set", set: nil, alt: "Hero"},
		{name: "empty set", set: &domain.DerivativeSet{}, alt: "Hero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Compose(tt.set, domain.Attributes{Alt: tt.alt})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, out)

			stage, ok := domain.StageOf(err)
			require.True(t, ok)
			assert.Equal(t, domain.StageValidate, stage)
		})
	}
}

func TestParseSrcset(t *testing.T) {
	got, err := markup.ParseSrcset(" /a-1.webp 400w,\n/a-2.webp 800w ")
	require.NoError(t, err)
	assert.Equal(t, []markup.Candidate{
		{URL: "/a-1.webp", Width: 400},
		{URL: "/a-2.webp", Width: 800},
	}, got)

	got, err = markup.ParseSrcset("")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, bad := range []string{"/a.webp", "/a.webp 2x", "/a.webp 0w", "/a.webp -4w", "/a.webp 400w,", "/a.webp 400w extra"} {
		_, err := markup.ParseSrcset(bad)
		assert.ErrorContains(t, err, domain.ErrValidation.Error(), bad)
	}
}
