package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records schedule metrics. Use NewMetricsRecorder() for
// OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTableBuild records a cost-table construction with the number
	// of cells computed and how long it took.
	RecordTableBuild(ctx context.Context, algorithm string, cells int, duration time.Duration)

	// RecordActionEmitted records a single action emission.
	RecordActionEmitted(ctx context.Context, algorithm, actionKind string)

	// RecordRecomputation records a forward recomputation of the given
	// number of steps.
	RecordRecomputation(ctx context.Context, algorithm string, steps int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	tableBuilds    metric.Int64Counter
	tableBuildMs   metric.Float64Histogram
	actionsEmitted metric.Int64Counter
	recomputeSteps metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance, lazily
// initialized on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("revolve")

	tableBuilds, err := meter.Int64Counter("revolve.table.builds",
		metric.WithDescription("Number of cost-table constructions"),
	)
	if err != nil {
		return nil, err
	}

	tableBuildMs, err := meter.Float64Histogram("revolve.table.build_ms",
		metric.WithDescription("Cost-table construction duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	actionsEmitted, err := meter.Int64Counter("revolve.actions.emitted",
		metric.WithDescription("Number of actions emitted"),
	)
	if err != nil {
		return nil, err
	}

	recomputeSteps, err := meter.Int64Counter("revolve.recompute.steps",
		metric.WithDescription("Number of forward steps recomputed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		tableBuilds:    tableBuilds,
		tableBuildMs:   tableBuildMs,
		actionsEmitted: actionsEmitted,
		recomputeSteps: recomputeSteps,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by OpenTelemetry. If
// metrics initialization fails, returns a no-op recorder.
//
// Uses the global OTel meter provider. Configure it before calling:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordTableBuild(ctx context.Context, algorithm string, cells int, duration time.Duration) {
	attrs := []attribute.KeyValue{attribute.String("algorithm", algorithm)}
	m.tableBuilds.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.tableBuildMs.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
	_ = cells
}

func (m *otelMetrics) RecordActionEmitted(ctx context.Context, algorithm, actionKind string) {
	m.actionsEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("algorithm", algorithm),
		attribute.String("action", actionKind),
	))
}

func (m *otelMetrics) RecordRecomputation(ctx context.Context, algorithm string, steps int) {
	m.recomputeSteps.Add(ctx, int64(steps), metric.WithAttributes(
		attribute.String("algorithm", algorithm),
	))
}
