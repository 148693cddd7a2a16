package revolve

import (
	"context"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve/internal/costtable"
	"github.com/randalmurphal/revolve/pkg/revolve/internal/oplist"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// HRevolveParams configures an H-Revolve schedule over a two-level memory
// hierarchy: SnapsInRAM RAM checkpoints and SnapsOnDisk disk checkpoints,
// each with independent write/read costs.
type HRevolveParams struct {
	MaxN        int
	SnapsInRAM  int
	SnapsOnDisk int
	Cost        CostParams
}

// NewHRevolve builds an H-Revolve schedule for the given parameters.
func NewHRevolve(params HRevolveParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 1 {
		return nil, &InvalidStepsError{Algorithm: "H-Revolve", MaxN: params.MaxN}
	}
	if params.SnapsInRAM < 1 {
		return nil, &InvalidBudgetError{Algorithm: "H-Revolve", SnapsInRAM: params.SnapsInRAM, SnapsOnDisk: params.SnapsOnDisk, RequiredMin: 1}
	}
	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cost := params.Cost
	if cost == (CostParams{}) {
		cost = DefaultHRevolveCostParams()
	}
	logger := observability.EnrichLogger(cfg.logger, "H-Revolve", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "H-Revolve", params.MaxN)
	start := time.Now()
	p := costtable.Params{UF: cost.UF, UB: cost.UB, WD: cost.WD, RD: cost.RD, WM: cost.WM, RM: cost.RM}
	h := costtable.BuildHOpt(
		params.MaxN,
		[]int{params.SnapsInRAM, params.SnapsOnDisk},
		[]float64{cost.WM, cost.WD},
		[]float64{cost.RM, cost.RD},
		p,
	)
	ops := oplist.CompileHRevolve(params.MaxN, params.SnapsInRAM, params.SnapsOnDisk, h, p)
	if err := oplist.Validate(ops); err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "H-Revolve", Detail: err.Error()}
	}
	actions, stats := compileActions(ops, params.MaxN)
	buildDuration := time.Since(start)
	cells := params.MaxN + 1
	observability.LogScheduleBuilt(logger, "H-Revolve", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "H-Revolve", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &revolveFamilySchedule{actions: actions, maxN: params.MaxN, stats: stats, usesDisk: params.SnapsOnDisk > 0}, nil
}
