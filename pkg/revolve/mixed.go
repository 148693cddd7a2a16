package revolve

import (
	"context"
	"time"

	internalmixed "github.com/randalmurphal/revolve/pkg/revolve/internal/mixed"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// MixedParams configures a Mixed schedule: a single pool of checkpointing
// units, each holding either a full restart checkpoint or only the
// adjoint-dependency data for one step, per [@maddison2023]. Offline;
// exactly one adjoint sweep is permitted.
type MixedParams struct {
	MaxN      int
	Snapshots int
	// Storage selects where the checkpointing pool lives: RAM or DISK
	// (default DISK, matching the reference's StorageType.DISK default).
	Storage StorageKind
}

// NewMixed builds a Mixed schedule for the given parameters.
func NewMixed(params MixedParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 1 {
		return nil, &InvalidStepsError{Algorithm: "Mixed", MaxN: params.MaxN}
	}
	required := minInt(1, params.MaxN-1)
	if params.Snapshots < required {
		return nil, &InvalidBudgetError{Algorithm: "Mixed", SnapsInRAM: params.Snapshots, RequiredMin: required}
	}
	storage := params.Storage
	if storage == NONE {
		storage = DISK
	}
	if storage != RAM && storage != DISK {
		return nil, &InternalInvariantError{Algorithm: "Mixed", Detail: "storage must be RAM or DISK"}
	}

	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	logger := observability.EnrichLogger(cfg.logger, "Mixed", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "Mixed", params.MaxN)
	start := time.Now()
	snapshots := minInt(params.Snapshots, maxInt(params.MaxN-1, 0))
	generated, err := internalmixed.Generate(params.MaxN, snapshots)
	if err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "Mixed", Detail: err.Error()}
	}

	actions, stats := translateMixed(generated, storage)
	buildDuration := time.Since(start)
	cells := snapshots + 1
	observability.LogScheduleBuilt(logger, "Mixed", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "Mixed", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &mixedSchedule{
		actions: actions,
		maxN:    params.MaxN,
		stats:   stats,
		storage: storage,
	}, nil
}

// translateMixed resolves each internal GeneratedAction's Persistent flag
// against the configured storage kind and produces the public Action
// stream plus informational Stats.
func translateMixed(generated []internalmixed.GeneratedAction, storage StorageKind) ([]Action, Stats) {
	var actions []Action
	var stats Stats

	storageOf := func(persistent bool) StorageKind {
		if persistent {
			return storage
		}
		return WORK
	}
	tally := func(kind string, storage StorageKind) {
		switch {
		case kind == "write" && storage == RAM:
			stats.WritesRAM++
		case kind == "write" && storage == DISK:
			stats.WritesDisk++
		case kind == "read" && storage == RAM:
			stats.ReadsRAM++
		case kind == "read" && storage == DISK:
			stats.ReadsDisk++
		case kind == "discard" && storage == RAM:
			stats.DiscardsRAM++
		case kind == "discard" && storage == DISK:
			stats.DiscardsDisk++
		}
	}

	for _, a := range generated {
		switch a.Kind {
		case internalmixed.KForward:
			s := storageOf(a.Persistent)
			actions = append(actions, Forward{
				N0: a.N0, N1: a.N1, WriteICS: a.WriteICS, WriteAdjDeps: a.WriteAdjDeps, Storage: s,
			})
			stats.ForwardSteps += a.N1 - a.N0
			if a.WriteICS || (a.WriteAdjDeps && a.Persistent) {
				tally("write", s)
			} else {
				stats.Recomputations += a.N1 - a.N0
			}
		case internalmixed.KReverse:
			actions = append(actions, Reverse{N1: a.N1, N0: a.N0, ClearAdjDeps: a.ClearAdjDeps})
		case internalmixed.KCopy:
			s := storageOf(a.Persistent)
			actions = append(actions, Copy{N: a.N0, FromStorage: s, ToStorage: WORK})
			tally("read", s)
		case internalmixed.KMove:
			s := storageOf(a.Persistent)
			actions = append(actions, Move{N: a.N0, FromStorage: s, ToStorage: WORK})
			tally("read", s)
			tally("discard", s)
		case internalmixed.KEndForward:
			actions = append(actions, EndForward{})
		case internalmixed.KEndReverse:
			actions = append(actions, EndReverse{})
		}
	}
	return actions, stats
}

// mixedSchedule replays the precomputed Mixed action stream. Offline;
// exactly one adjoint sweep, matching is_exhausted in the reference
// implementation.
type mixedSchedule struct {
	actions []Action
	pos     int
	maxN    int
	stats   Stats
	storage StorageKind
}

func (s *mixedSchedule) NextAction() Action {
	if s.pos >= len(s.actions) {
		return EndReverse{}
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

func (s *mixedSchedule) Finalize(n1 int) error {
	if n1 != s.maxN {
		return &FinalizeConflictError{Requested: n1, Current: s.maxN}
	}
	return nil
}

func (s *mixedSchedule) MaxN() *int {
	n := s.maxN
	return &n
}

func (s *mixedSchedule) UsesDiskStorage() bool { return s.storage == DISK }

func (s *mixedSchedule) IsExhausted() bool { return s.pos >= len(s.actions) }

func (s *mixedSchedule) Stats() Stats { return s.stats }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
