package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/srcset/internal/core/domain"
)

var _ sdktrace.SpanProcessor = (*Summary)(nil)

// SummaryStats aggregates the image spans of one build.
type SummaryStats struct {
	Images       int
	Generated    int
	Cached       int
	Failed       int
	Derivatives  int
	Written      int
	Bytes        int64
	GenerateTime time.Duration
}

// String renders the end-of-build log line.
func (s SummaryStats) String() string {
	return fmt.Sprintf("%d images (%d generated, %d cached, %d failed), %d files written, %s encoded in %s",
		s.Images, s.Generated, s.Cached, s.Failed, s.Written, FormatBytes(s.Bytes),
		s.GenerateTime.Round(time.Millisecond))
}

// Summary implements sdktrace.SpanProcessor and counts finished image spans.
type Summary struct {
	mu    sync.Mutex
	stats SummaryStats
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{}
}

// OnStart does nothing.
func (s *Summary) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd folds a finished span into the counters.
func (s *Summary) OnEnd(span sdktrace.ReadOnlySpan) {
	attrs := attributeMap(span.Attributes())

	s.mu.Lock()
	defer s.mu.Unlock()

	switch span.Name() {
	case domain.SpanImage:
		s.stats.Images++
		if span.Status().Code == codes.Error {
			s.stats.Failed++
			return
		}
		switch domain.SetOutcome(attrs[domain.AttrOutcome].AsString()) {
		case domain.OutcomeGenerated:
			s.stats.Generated++
		case domain.OutcomeCached:
			s.stats.Cached++
		case domain.OutcomeFailed:
			s.stats.Failed++
		default:
		}
	case domain.SpanGenerate:
		s.stats.GenerateTime += span.EndTime().Sub(span.StartTime())
		s.stats.Derivatives += int(attrs[domain.AttrDerivatives].AsInt64())
		s.stats.Bytes += attrs[domain.AttrBytes].AsInt64()
	case domain.SpanPersist:
		s.stats.Written += int(attrs[domain.AttrWritten].AsInt64())
	}
}

// Snapshot returns the counters collected so far.
func (s *Summary) Snapshot() SummaryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset clears the counters, between watch rebuilds.
func (s *Summary) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = SummaryStats{}
}

// ForceFlush does nothing.
func (s *Summary) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (s *Summary) Shutdown(_ context.Context) error {
	return nil
}

func attributeMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
