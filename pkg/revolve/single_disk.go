package revolve

// singleDiskSchedule stores every step's adjoint-dependency data on
// disk, restoring one step at a time into the work buffer before each
// Reverse. If MoveData is set, the restore consumes the disk copy (a
// Move rather than a Copy), so only one Reverse sweep is ever possible;
// otherwise the disk data survives and sweeps repeat indefinitely.
type singleDiskSchedule struct {
	cur                cursor
	moveData           bool
	openForwardEmitted bool
	endForwardEmitted  bool
	exhausted          bool
	r                  int
	pendingRestore     bool
}

// NewSingleDisk builds a schedule that keeps all adjoint-dependency data
// resident on disk for the lifetime of the driver. Online; unlimited
// Reverse sweeps unless moveData is true, in which case exactly one
// sweep is permitted.
func NewSingleDisk(moveData bool) Schedule {
	return &singleDiskSchedule{moveData: moveData}
}

func (s *singleDiskSchedule) NextAction() Action {
	if !s.openForwardEmitted {
		s.openForwardEmitted = true
		n1 := IntMax
		if s.cur.maxN != nil {
			n1 = *s.cur.maxN
		}
		return Forward{N0: s.cur.n, N1: n1, WriteAdjDeps: true, Storage: DISK}
	}
	if s.cur.maxN == nil {
		return EndReverse{}
	}
	if !s.endForwardEmitted {
		s.endForwardEmitted = true
		s.cur.n = *s.cur.maxN
		return EndForward{}
	}
	if s.exhausted {
		return ErrorAction{Err: &IterationAfterExhaustedError{Algorithm: "SingleDiskStorage"}}
	}
	maxN := *s.cur.maxN
	if s.r < maxN {
		n1 := maxN - s.r
		n0 := n1 - 1
		if !s.pendingRestore {
			s.pendingRestore = true
			if s.moveData {
				return Move{N: n0, FromStorage: DISK, ToStorage: WORK}
			}
			return Copy{N: n0, FromStorage: DISK, ToStorage: WORK}
		}
		s.pendingRestore = false
		s.r = maxN - n0
		return Reverse{N1: n1, N0: n0, ClearAdjDeps: true}
	}
	s.r = 0
	if s.moveData {
		s.exhausted = true
	}
	return EndReverse{}
}

func (s *singleDiskSchedule) Finalize(n1 int) error { return s.cur.finalize(n1) }

func (s *singleDiskSchedule) MaxN() *int { return s.cur.MaxN() }

func (s *singleDiskSchedule) UsesDiskStorage() bool { return true }

func (s *singleDiskSchedule) IsExhausted() bool { return s.exhausted }

func (s *singleDiskSchedule) Stats() Stats {
	var st Stats
	if s.cur.maxN != nil {
		st.ForwardSteps = *s.cur.maxN
		st.WritesDisk = 1
		st.ReadsDisk = *s.cur.maxN
	}
	return st
}
