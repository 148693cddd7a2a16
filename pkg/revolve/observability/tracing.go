package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the revolve tracer instance, using the global OTel tracer
// provider.
var tracer = otel.Tracer("revolve")

// SpanManager handles trace span lifecycle. Use NewSpanManager() for OTel
// tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBuildSpan starts a span for cost-table construction.
	StartBuildSpan(ctx context.Context, algorithm string, maxN int) (context.Context, trace.Span)

	// StartScheduleSpan starts a span for draining a schedule to
	// exhaustion.
	StartScheduleSpan(ctx context.Context, algorithm string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager backed by OpenTelemetry.
//
// Uses the global OTel tracer provider. Configure it before calling:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartBuildSpan(ctx context.Context, algorithm string, maxN int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "revolve.build",
		trace.WithAttributes(
			attribute.String("algorithm", algorithm),
			attribute.Int("max_n", maxN),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartScheduleSpan(ctx context.Context, algorithm string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "revolve.schedule."+algorithm,
		trace.WithAttributes(
			attribute.String("algorithm", algorithm),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
