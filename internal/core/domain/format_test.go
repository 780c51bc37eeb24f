package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/srcset/internal/core/domain"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Format
		ok   bool
	}{
		{"avif", domain.FormatAVIF, true},
		{"WebP", domain.FormatWebP, true},
		{"jpg", domain.FormatJPEG, true},
		{" jpeg ", domain.FormatJPEG, true},
		{"png", domain.FormatPNG, true},
		{"gif", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.ParseFormat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Properties(t *testing.T) {
	assert.Equal(t, domain.TierNextGen, domain.FormatAVIF.Tier())
	assert.Equal(t, domain.TierModern, domain.FormatWebP.Tier())
	assert.Equal(t, domain.TierFallback, domain.FormatJPEG.Tier())
	assert.Equal(t, domain.TierFallback, domain.FormatPNG.Tier())

	assert.Equal(t, "image/avif", domain.FormatAVIF.MIMEType())
	assert.Equal(t, "image/jpeg", domain.FormatJPEG.MIMEType())
	assert.Equal(t, "jpeg", domain.FormatJPEG.Extension())

	assert.True(t, domain.FormatPNG.Known())
	assert.False(t, domain.Format("jpg").Known())
}
