package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/srcset/internal/adapters/telemetry"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_Start(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerWithProvider(tp, "test-tracer")

	_, span := tracer.Start(context.Background(), "test-span", ports.WithAttribute("source", "hero.jpg"))
	span.SetAttribute("count", 3)
	span.SetAttribute("fingerprint", domain.Fingerprint{0xab})
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "test-span", spans[0].Name())

	attrs := make(map[string]string)
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "hero.jpg", attrs["source"])
	assert.Equal(t, "3", attrs["count"])
	assert.Len(t, attrs["fingerprint"], 64)

	require.Len(t, spans[0].Events(), 2)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}

func TestSummary_Counts(t *testing.T) {
	summary := telemetry.NewSummary()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(summary))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")
	ctx := context.Background()

	image := func(outcome domain.SetOutcome, derivatives int, bytes int64, fail bool) {
		ctx, span := tracer.Start(ctx, domain.SpanImage)
		defer span.End()
		if fail {
			span.RecordError(errors.New("decode failed"))
			return
		}
		span.SetAttribute(domain.AttrOutcome, string(outcome))
		if outcome != domain.OutcomeGenerated {
			return
		}
		_, gen := tracer.Start(ctx, domain.SpanGenerate)
		gen.SetAttribute(domain.AttrDerivatives, derivatives)
		gen.SetAttribute(domain.AttrBytes, bytes)
		gen.End()

		_, persist := tracer.Start(ctx, domain.SpanPersist)
		persist.SetAttribute(domain.AttrWritten, derivatives)
		persist.End()
	}

	image(domain.OutcomeGenerated, 9, 2048, false)
	image(domain.OutcomeGenerated, 6, 1024, false)
	image(domain.OutcomeCached, 0, 0, false)
	image(domain.OutcomeGenerated, 0, 0, true)

	stats := summary.Snapshot()
	assert.Equal(t, 4, stats.Images)
	assert.Equal(t, 2, stats.Generated)
	assert.Equal(t, 1, stats.Cached)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 15, stats.Derivatives)
	assert.Equal(t, 15, stats.Written)
	assert.Equal(t, int64(3072), stats.Bytes)
	assert.Contains(t, stats.String(), "4 images (2 generated, 1 cached, 1 failed)")
	assert.Contains(t, stats.String(), "3.0 KiB")

	summary.Reset()
	assert.Equal(t, telemetry.SummaryStats{}, summary.Snapshot())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", telemetry.FormatBytes(512))
	assert.Equal(t, "1.5 KiB", telemetry.FormatBytes(1536))
	assert.Equal(t, "2.0 MiB", telemetry.FormatBytes(2*1024*1024))
}
