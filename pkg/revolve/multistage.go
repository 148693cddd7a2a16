package revolve

import (
	"context"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve/internal/binomial"
	"github.com/randalmurphal/revolve/pkg/revolve/observability"
)

// MultistageParams configures a Multistage schedule: the classical
// Griewank-Walther binomial distribution of checkpoints (Algorithm 799),
// with a Stumm-Walther allocation of the checkpointing units between RAM
// and disk. Offline; exactly one adjoint sweep is permitted.
type MultistageParams struct {
	MaxN        int
	SnapsInRAM  int
	SnapsOnDisk int
	// Trajectory selects among the multiple valid binomial solutions:
	// "maximum" (default) or "revolve". See binomial.NAdvance.
	Trajectory string
}

// NewMultistage builds a Multistage schedule for the given parameters.
func NewMultistage(params MultistageParams, opts ...ScheduleOption) (Schedule, error) {
	if params.MaxN < 2 {
		return nil, &InvalidStepsError{Algorithm: "Multistage", MaxN: params.MaxN}
	}
	if params.SnapsInRAM < 0 || params.SnapsOnDisk < 0 {
		return nil, &InvalidBudgetError{Algorithm: "Multistage", SnapsInRAM: params.SnapsInRAM, SnapsOnDisk: params.SnapsOnDisk, RequiredMin: 0}
	}
	if params.SnapsInRAM+params.SnapsOnDisk < 1 {
		return nil, &InvalidBudgetError{Algorithm: "Multistage", SnapsInRAM: params.SnapsInRAM, SnapsOnDisk: params.SnapsOnDisk, RequiredMin: 1}
	}
	cfg := defaultScheduleConfig()
	for _, o := range opts {
		o(&cfg)
	}
	traj := binomial.Trajectory(params.Trajectory)
	if traj == "" {
		traj = binomial.Maximum
	}
	logger := observability.EnrichLogger(cfg.logger, "Multistage", params.MaxN)

	ctx, span := cfg.spans.StartBuildSpan(context.Background(), "Multistage", params.MaxN)
	start := time.Now()

	ramSlots := minInt(params.SnapsInRAM, params.MaxN-1)
	diskSlots := minInt(params.SnapsOnDisk, params.MaxN-1)

	var onRAM []bool
	switch {
	case ramSlots == 0:
		onRAM = make([]bool, diskSlots)
	case diskSlots == 0:
		onRAM = make([]bool, ramSlots)
		for i := range onRAM {
			onRAM[i] = true
		}
	default:
		allocated, err := binomial.AllocateSnapshots(params.MaxN, ramSlots, diskSlots, traj)
		if err != nil {
			cfg.spans.EndSpanWithError(span, err)
			return nil, &InternalInvariantError{Algorithm: "Multistage", Detail: err.Error()}
		}
		onRAM = allocated
	}

	units := len(onRAM)
	generated, err := binomial.Generate(params.MaxN, units, traj)
	if err != nil {
		cfg.spans.EndSpanWithError(span, err)
		return nil, &InternalInvariantError{Algorithm: "Multistage", Detail: err.Error()}
	}

	actions, stats, usesRAM, usesDisk := translateMultistage(generated, onRAM)
	buildDuration := time.Since(start)
	cells := units + 1
	observability.LogScheduleBuilt(logger, "Multistage", cells, buildDuration)
	cfg.metrics.RecordTableBuild(ctx, "Multistage", cells, buildDuration)
	cfg.spans.EndSpanWithError(span, nil)

	return &multistageSchedule{
		actions:  actions,
		maxN:     params.MaxN,
		stats:    stats,
		usesDisk: usesDisk,
		usesRAM:  usesRAM,
	}, nil
}

// translateMultistage resolves each binomial.GeneratedAction's abstract
// checkpointing-unit slot against the RAM/disk allocation and produces the
// public Action stream plus informational Stats.
func translateMultistage(generated []binomial.GeneratedAction, onRAM []bool) (actions []Action, stats Stats, usesRAM, usesDisk bool) {
	storageOf := func(slot binomial.Slot) StorageKind {
		if !slot.Unit {
			return WORK
		}
		if onRAM[slot.Index] {
			usesRAM = true
			return RAM
		}
		usesDisk = true
		return DISK
	}

	for _, a := range generated {
		switch a.Kind {
		case binomial.KForward:
			storage := storageOf(a.To)
			actions = append(actions, Forward{
				N0: a.N0, N1: a.N1, WriteICS: a.WriteICS, WriteAdjDeps: a.WriteAdjDeps, Storage: storage,
			})
			stats.ForwardSteps += a.N1 - a.N0
			switch {
			case a.WriteICS:
				if storage == RAM {
					stats.WritesRAM++
				} else {
					stats.WritesDisk++
				}
			default:
				stats.Recomputations += a.N1 - a.N0
			}
		case binomial.KReverse:
			actions = append(actions, Reverse{N1: a.N1, N0: a.N0, ClearAdjDeps: a.ClearAdjDeps})
		case binomial.KCopy:
			storage := storageOf(a.From)
			actions = append(actions, Copy{N: a.N0, FromStorage: storage, ToStorage: WORK})
			if storage == RAM {
				stats.ReadsRAM++
			} else {
				stats.ReadsDisk++
			}
		case binomial.KMove:
			storage := storageOf(a.From)
			actions = append(actions, Move{N: a.N0, FromStorage: storage, ToStorage: WORK})
			if storage == RAM {
				stats.ReadsRAM++
				stats.DiscardsRAM++
			} else {
				stats.ReadsDisk++
				stats.DiscardsDisk++
			}
		case binomial.KEndForward:
			actions = append(actions, EndForward{})
		case binomial.KEndReverse:
			actions = append(actions, EndReverse{})
		}
	}
	return actions, stats, usesRAM, usesDisk
}

// multistageSchedule replays the precomputed Multistage action stream.
// Offline; exactly one adjoint sweep, matching is_exhausted in the
// reference implementation.
type multistageSchedule struct {
	actions  []Action
	pos      int
	maxN     int
	stats    Stats
	usesRAM  bool
	usesDisk bool
}

func (s *multistageSchedule) NextAction() Action {
	if s.pos >= len(s.actions) {
		return EndReverse{}
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

func (s *multistageSchedule) Finalize(n1 int) error {
	if n1 != s.maxN {
		return &FinalizeConflictError{Requested: n1, Current: s.maxN}
	}
	return nil
}

func (s *multistageSchedule) MaxN() *int {
	n := s.maxN
	return &n
}

func (s *multistageSchedule) UsesDiskStorage() bool { return s.usesDisk }

func (s *multistageSchedule) IsExhausted() bool { return s.pos >= len(s.actions) }

func (s *multistageSchedule) Stats() Stats { return s.stats }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
