package revolve

import (
	"context"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve/internal/costtable"
	"github.com/randalmurphal/revolve/pkg/revolve/internal/oplist"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// DiskRevolveParams configures a Disk-Revolve schedule: max_n forward
// steps with SnapsInRAM RAM checkpoints and unlimited disk checkpoints,
// using each disk checkpoint for at most one re-read.
type DiskRevolveParams struct {
	MaxN       int
	SnapsInRAM int
	Cost       CostParams
}

// NewDiskRevolve builds a Disk-Revolve schedule for the given parameters.
func NewDiskRevolve(params DiskRevolveParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 1 {
		return nil, &InvalidStepsError{Algorithm: "Disk-Revolve", MaxN: params.MaxN}
	}
	if params.SnapsInRAM < 0 {
		return nil, &InvalidBudgetError{Algorithm: "Disk-Revolve", SnapsInRAM: params.SnapsInRAM, RequiredMin: 0}
	}
	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cost := params.Cost
	if cost == (CostParams{}) {
		cost = DefaultHRevolveCostParams()
	}
	logger := observability.EnrichLogger(cfg.logger, "Disk-Revolve", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "Disk-Revolve", params.MaxN)
	start := time.Now()
	p := costtable.Params{UF: cost.UF, UB: cost.UB, WD: cost.WD, RD: cost.RD}
	opt0 := costtable.BuildOpt0(params.MaxN, params.SnapsInRAM, p)
	dr := costtable.BuildDiskRevolve(params.MaxN, params.SnapsInRAM, opt0, p)
	ops := oplist.CompileDiskRevolve(params.MaxN, params.SnapsInRAM, opt0, dr, p)
	if err := oplist.Validate(ops); err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "Disk-Revolve", Detail: err.Error()}
	}
	actions, stats := compileActions(ops, params.MaxN)
	buildDuration := time.Since(start)
	cells := params.MaxN + 1
	observability.LogScheduleBuilt(logger, "Disk-Revolve", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "Disk-Revolve", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &revolveFamilySchedule{actions: actions, maxN: params.MaxN, stats: stats, usesDisk: true}, nil
}

// revolveFamilySchedule replays a precomputed Action stream shared by the
// Disk-Revolve, Periodic-Disk-Revolve, and H-Revolve schedules, which
// differ only in how their op list is compiled.
type revolveFamilySchedule struct {
	actions  []Action
	pos      int
	maxN     int
	stats    Stats
	usesDisk bool
}

func (s *revolveFamilySchedule) NextAction() Action {
	if s.pos >= len(s.actions) {
		return EndReverse{}
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

func (s *revolveFamilySchedule) Finalize(n1 int) error {
	if n1 != s.maxN {
		return &FinalizeConflictError{Requested: n1, Current: s.maxN}
	}
	return nil
}

func (s *revolveFamilySchedule) MaxN() *int {
	n := s.maxN
	return &n
}

func (s *revolveFamilySchedule) UsesDiskStorage() bool { return s.usesDisk }

func (s *revolveFamilySchedule) IsExhausted() bool { return s.pos >= len(s.actions) }

func (s *revolveFamilySchedule) Stats() Stats { return s.stats }
