package revolve

import (
	"context"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve/internal/costtable"
	"github.com/randalmurphal/revolve/pkg/revolve/internal/oplist"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// PeriodicDiskRevolveParams configures a Periodic-Disk-Revolve schedule:
// max_n forward steps, SnapsInRAM RAM checkpoints, and disk checkpoints
// written at a fixed period chosen to minimize relative disk-access cost.
// If Period is zero, the optimal period is computed automatically.
type PeriodicDiskRevolveParams struct {
	MaxN       int
	SnapsInRAM int
	Period     int
	Cost       CostParams
}

// NewPeriodicDiskRevolve builds a Periodic-Disk-Revolve schedule.
func NewPeriodicDiskRevolve(params PeriodicDiskRevolveParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 1 {
		return nil, &InvalidStepsError{Algorithm: "Periodic-Disk-Revolve", MaxN: params.MaxN}
	}
	if params.SnapsInRAM < 1 {
		return nil, &InvalidBudgetError{Algorithm: "Periodic-Disk-Revolve", SnapsInRAM: params.SnapsInRAM, RequiredMin: 1}
	}
	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cost := params.Cost
	if cost == (CostParams{}) {
		cost = DefaultHRevolveCostParams()
	}
	logger := observability.EnrichLogger(cfg.logger, "Periodic-Disk-Revolve", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "Periodic-Disk-Revolve", params.MaxN)
	start := time.Now()
	p := costtable.Params{UF: cost.UF, UB: cost.UB, WD: cost.WD, RD: cost.RD}
	opt0 := costtable.BuildOpt0(params.MaxN, params.SnapsInRAM, p)

	period := params.Period
	if period < 1 {
		optv := costtable.BuildOptV(params.MaxN, params.SnapsInRAM, opt0, p)
		period = costtable.BestPeriod(params.MaxN, optv, p)
	}

	ops := oplist.CompilePeriodicDiskRevolve(params.MaxN, params.SnapsInRAM, period, opt0, p)
	if err := oplist.Validate(ops); err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "Periodic-Disk-Revolve", Detail: err.Error()}
	}
	actions, stats := compileActions(ops, params.MaxN)
	buildDuration := time.Since(start)
	cells := params.MaxN + 1
	observability.LogScheduleBuilt(logger, "Periodic-Disk-Revolve", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "Periodic-Disk-Revolve", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &revolveFamilySchedule{actions: actions, maxN: params.MaxN, stats: stats, usesDisk: true}, nil
}
