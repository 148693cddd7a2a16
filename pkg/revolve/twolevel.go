package revolve

import (
	"github.com/randalmurphal/revolve/pkg/revolve/internal/binomial"
)

// TwoLevelParams configures a TwoLevel schedule: a periodic disk
// checkpoint every Period forward steps, with a binomial sub-schedule
// rebuilding each period block during the reverse sweep using up to
// BinomialSnapshots additional checkpointing units. Online; max_n need
// not be known up front, and unlimited adjoint sweeps are permitted.
type TwoLevelParams struct {
	Period            int
	BinomialSnapshots int
	// BinomialStorage selects where the additional, binomial-distributed
	// restart checkpoints live (RAM or DISK; default DISK). The periodic
	// checkpoints themselves always go to DISK, independent of this
	// setting.
	BinomialStorage StorageKind
	// Trajectory selects among the multiple valid binomial solutions for
	// the inner sub-schedule. See binomial.NAdvance.
	Trajectory string
}

// twoLevelPhase tracks where NextAction's reverse-sweep state machine
// resumes on the next call, since the reference implementation's
// generator-based _iterator has no direct Go equivalent: this schedule
// cannot precompute its action stream because max_n is not known until
// Finalize is called mid-stream.
type twoLevelPhase int

const (
	phaseBlockStart twoLevelPhase = iota
	phaseInnerCheck
	phaseRebuildFirstForward
	phaseRebuildLoop
	phaseCommonTail1
	phaseCommonTail2
)

// twoLevelSchedule replays TwoLevelCheckpointSchedule._iterator as an
// explicit resumable state machine.
type twoLevelSchedule struct {
	cur               cursor
	period            int
	binomialSnapshots int
	binomialStorage   StorageKind
	trajectory        binomial.Trajectory

	proposedN         int // next periodic-checkpoint boundary to propose
	endForwardEmitted bool

	phase     twoLevelPhase
	r         int
	n0s       int
	snapshots []int
	n         int // mirrors self._n during reverse-phase rebuild/restore

	stats Stats
}

// NewTwoLevel builds a TwoLevel schedule for the given parameters. Like
// None, SingleMemory, and SingleDisk, it runs online and max_n is fixed
// later via Finalize, so there is no cost table to build and no
// construction-time observability to attach.
func NewTwoLevel(params TwoLevelParams) (Schedule, error) {
	if params.Period < 1 {
		return nil, &InvalidPeriodError{Period: params.Period}
	}
	if params.BinomialSnapshots < 0 {
		return nil, &InvalidBudgetError{Algorithm: "TwoLevel", SnapsInRAM: params.BinomialSnapshots, RequiredMin: 0}
	}
	storage := params.BinomialStorage
	if storage == NONE {
		storage = DISK
	}
	if storage != RAM && storage != DISK {
		return nil, &InternalInvariantError{Algorithm: "TwoLevel", Detail: "binomial storage must be RAM or DISK"}
	}
	traj := binomial.Trajectory(params.Trajectory)
	if traj == "" {
		traj = binomial.Maximum
	}

	return &twoLevelSchedule{
		period:            params.Period,
		binomialSnapshots: params.BinomialSnapshots,
		binomialStorage:   storage,
		trajectory:        traj,
	}, nil
}

func (s *twoLevelSchedule) NextAction() Action {
	if s.cur.maxN == nil {
		n0 := s.proposedN
		n1 := n0 + s.period
		s.proposedN = n1
		s.stats.ForwardSteps += s.period
		s.stats.WritesDisk++
		return Forward{N0: n0, N1: n1, WriteICS: true, Storage: DISK}
	}
	if !s.endForwardEmitted {
		s.endForwardEmitted = true
		s.cur.n = *s.cur.maxN
		return EndForward{}
	}
	return s.nextReverseAction()
}

// nextReverseAction ports the reverse-sweep half of _iterator: for each
// period block (outer checkpoint at n0s on disk), a binomial sub-schedule
// of up to binomialSnapshots additional checkpoints rebuilds the block's
// steps one adjoint step at a time.
func (s *twoLevelSchedule) nextReverseAction() Action {
	maxN := *s.cur.maxN
	for {
		switch s.phase {
		case phaseBlockStart:
			if s.r >= maxN {
				s.r = 0
				return EndReverse{}
			}
			n := maxN - s.r - 1
			s.n0s = (n / s.period) * s.period
			s.snapshots = []int{s.n0s}
			s.phase = phaseInnerCheck

		case phaseInnerCheck:
			if s.r >= maxN-s.n0s {
				if s.r != maxN-s.n0s || len(s.snapshots) != 0 {
					panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: "period block left checkpoints resident"})
				}
				s.phase = phaseBlockStart
				continue
			}
			if len(s.snapshots) == 0 {
				panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: "checkpoint stack exhausted mid-block"})
			}
			cpN := s.snapshots[len(s.snapshots)-1]
			if cpN == maxN-s.r-1 {
				s.snapshots = s.snapshots[:len(s.snapshots)-1]
				s.n = cpN
				s.phase = phaseCommonTail1
				if cpN == s.n0s {
					s.stats.ReadsDisk++
					return Copy{N: cpN, FromStorage: DISK, ToStorage: WORK}
				}
				if s.binomialStorage == RAM {
					s.stats.ReadsRAM++
					s.stats.DiscardsRAM++
				} else {
					s.stats.ReadsDisk++
					s.stats.DiscardsDisk++
				}
				return Move{N: cpN, FromStorage: s.binomialStorage, ToStorage: WORK}
			}
			s.n = cpN
			s.phase = phaseRebuildFirstForward
			if cpN == s.n0s {
				s.stats.ReadsDisk++
				return Copy{N: cpN, FromStorage: DISK, ToStorage: WORK}
			}
			if s.binomialStorage == RAM {
				s.stats.ReadsRAM++
			} else {
				s.stats.ReadsDisk++
			}
			return Copy{N: cpN, FromStorage: s.binomialStorage, ToStorage: WORK}

		case phaseRebuildFirstForward:
			nSnapshots := s.binomialSnapshots + 1 - len(s.snapshots) + 1
			n0 := s.n
			adv, err := binomial.NAdvance(maxN-s.r-n0, nSnapshots, s.trajectory)
			if err != nil {
				panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: err.Error()})
			}
			n1 := n0 + adv
			s.n = n1
			s.stats.ForwardSteps += n1 - n0
			s.stats.Recomputations += n1 - n0
			s.phase = phaseRebuildLoop
			return Forward{N0: n0, N1: n1, Storage: WORK}

		case phaseRebuildLoop:
			if s.n < maxN-s.r-1 {
				nSnapshots := s.binomialSnapshots + 1 - len(s.snapshots)
				n0 := s.n
				adv, err := binomial.NAdvance(maxN-s.r-n0, nSnapshots, s.trajectory)
				if err != nil {
					panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: err.Error()})
				}
				n1 := n0 + adv
				s.n = n1
				s.stats.ForwardSteps += n1 - n0
				if len(s.snapshots) >= s.binomialSnapshots+1 {
					panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: "binomial checkpoint budget exceeded"})
				}
				s.snapshots = append(s.snapshots, n0)
				if s.binomialStorage == RAM {
					s.stats.WritesRAM++
				} else {
					s.stats.WritesDisk++
				}
				return Forward{N0: n0, N1: n1, WriteICS: true, Storage: s.binomialStorage}
			}
			if s.n != maxN-s.r-1 {
				panic(&InternalInvariantError{Algorithm: "TwoLevel", Detail: "inner rebuild did not reach its target"})
			}
			s.phase = phaseCommonTail1

		case phaseCommonTail1:
			prev := s.n
			s.n++
			s.stats.ForwardSteps++
			s.phase = phaseCommonTail2
			return Forward{N0: prev, N1: s.n, WriteAdjDeps: true, Storage: WORK}

		case phaseCommonTail2:
			n1, n0 := s.n, s.n-1
			s.r++
			s.phase = phaseInnerCheck
			return Reverse{N1: n1, N0: n0, ClearAdjDeps: true}
		}
	}
}

func (s *twoLevelSchedule) Finalize(n1 int) error { return s.cur.finalize(n1) }

func (s *twoLevelSchedule) MaxN() *int { return s.cur.MaxN() }

// UsesDiskStorage always reports true: the periodic checkpoints are
// always written to DISK regardless of BinomialStorage.
func (s *twoLevelSchedule) UsesDiskStorage() bool { return true }

// IsExhausted always returns false: TwoLevel permits unlimited repeated
// adjoint sweeps once the forward run has completed.
func (s *twoLevelSchedule) IsExhausted() bool { return false }

func (s *twoLevelSchedule) Stats() Stats { return s.stats }
