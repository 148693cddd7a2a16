package revolve

import (
	"context"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve/internal/costtable"
	"github.com/randalmurphal/revolve/pkg/revolve/internal/oplist"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// RevolveParams configures a classical Revolve schedule: max_n forward
// steps, checkpointed using exactly SnapsInRAM restart checkpoints in RAM
// and no disk. This is the offline, minimal-recomputation schedule from
// Griewank & Walther's original algorithm.
type RevolveParams struct {
	MaxN       int
	SnapsInRAM int
	Cost       CostParams
}

// revolveSchedule replays a precomputed Action stream built from the
// classical Opt_0 dynamic program.
type revolveSchedule struct {
	actions []Action
	pos     int
	maxN    int
	stats   Stats
	cfg     scheduleConfig
}

// NewRevolve builds a Revolve schedule for the given parameters.
func NewRevolve(params RevolveParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 1 {
		return nil, &InvalidStepsError{Algorithm: "Revolve", MaxN: params.MaxN}
	}
	if params.SnapsInRAM < 1 {
		return nil, &InvalidBudgetError{Algorithm: "Revolve", SnapsInRAM: params.SnapsInRAM, RequiredMin: 1}
	}
	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cost := params.Cost
	if cost == (CostParams{}) {
		cost = DefaultCostParams()
	}
	logger := observability.EnrichLogger(cfg.logger, "Revolve", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "Revolve", params.MaxN)
	start := time.Now()
	p := costtable.Params{UF: cost.UF, UB: cost.UB}
	opt0 := costtable.BuildOpt0(params.MaxN, params.SnapsInRAM, p)
	ops := oplist.CompileRevolve(params.MaxN, params.SnapsInRAM, opt0, p)
	if err := oplist.Validate(ops); err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "Revolve", Detail: err.Error()}
	}
	actions, stats := compileActions(ops, params.MaxN)
	buildDuration := time.Since(start)
	cells := (params.SnapsInRAM + 1) * (params.MaxN + 1)
	observability.LogScheduleBuilt(logger, "Revolve", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "Revolve", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &revolveSchedule{actions: actions, maxN: params.MaxN, stats: stats, cfg: cfg}, nil
}

func (s *revolveSchedule) NextAction() Action {
	if s.pos >= len(s.actions) {
		return EndReverse{}
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

func (s *revolveSchedule) Finalize(n1 int) error {
	if n1 != s.maxN {
		return &FinalizeConflictError{Requested: n1, Current: s.maxN}
	}
	return nil
}

func (s *revolveSchedule) MaxN() *int {
	n := s.maxN
	return &n
}

func (s *revolveSchedule) UsesDiskStorage() bool { return false }

func (s *revolveSchedule) IsExhausted() bool { return s.pos >= len(s.actions) }

func (s *revolveSchedule) Stats() Stats { return s.stats }
