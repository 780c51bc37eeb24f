package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/srcset/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
	// SummaryNodeID is the unique identifier for the build summary Graft node.
	SummaryNodeID graft.ID = "adapter.telemetry.summary"
)

func init() {
	graft.Register(graft.Node[*Summary]{
		ID:        SummaryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Summary, error) {
			return NewSummary(), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SummaryNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			summary, err := graft.Dep[*Summary](ctx)
			if err != nil {
				return nil, err
			}
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(summary))
			return NewOTelTracerWithProvider(tp, "srcset"), nil
		},
	})
}
