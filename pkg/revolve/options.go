package revolve

import (
	"log/slog"

	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// CostParams is the cost-parameter bundle shared by every table-driven
// algorithm (Revolve, DiskRevolve, PeriodicDiskRevolve, HRevolve).
//
// UF is the cost of advancing the forward solver one step. UB is the cost
// of advancing the forward solver one step, storing adjoint-dependency
// data, and then advancing the adjoint over that step. WD/RD are the
// write/read cost for DISK; WM/RM are the write/read cost for RAM (zero by
// convention, per spec).
type CostParams struct {
	UF float64
	UB float64
	WD float64
	RD float64
	WM float64
	RM float64
}

// DefaultCostParams returns the default cost parameters documented for
// every algorithm in the external interface table: uf=1, ub=1, and all
// write/read costs zero.
func DefaultCostParams() CostParams {
	return CostParams{UF: 1, UB: 1, WD: 0, RD: 0, WM: 0, RM: 0}
}

// DefaultHRevolveCostParams returns the H-Revolve paper's defaults, used
// when no explicit CostParams is supplied to HRevolve, DiskRevolve, or
// PeriodicDiskRevolve: uf=1, ub=2, and a small nonzero disk write/read cost.
func DefaultHRevolveCostParams() CostParams {
	return CostParams{UF: 1, UB: 2, WD: 0.1, RD: 0.1, WM: 0, RM: 0}
}

// scheduleConfig holds the observability wiring shared by every algorithm
// constructor. It never affects the emitted action stream.
type scheduleConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultScheduleConfig() scheduleConfig {
	return scheduleConfig{
		logger:  nil,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// ScheduleOption configures observability for a schedule constructor. It
// never changes the emitted action stream: determinism (P4) holds for
// fixed algorithm parameters regardless of which options are passed.
type ScheduleOption func(*scheduleConfig)

// WithLogger attaches a structured logger. Schedule construction is
// logged at info level; individual actions are not logged.
func WithLogger(logger *slog.Logger) ScheduleOption {
	return func(c *scheduleConfig) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics recorder. Use observability.NewMetricsRecorder()
// for OpenTelemetry-backed metrics.
func WithMetrics(m observability.MetricsRecorder) ScheduleOption {
	return func(c *scheduleConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing attaches a span manager. Use observability.NewSpanManager()
// for OpenTelemetry-backed tracing.
func WithTracing(s observability.SpanManager) ScheduleOption {
	return func(c *scheduleConfig) {
		if s != nil {
			c.spans = s
		}
	}
}
