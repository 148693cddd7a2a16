package revolve

// noneSchedule implements the trivial schedule for drivers that never run
// an adjoint calculation: a single unbounded Forward sweep, no storage
// at all, zero permitted Reverse sweeps.
type noneSchedule struct {
	cur                cursor
	openForwardEmitted bool
	endForwardEmitted  bool
}

// NewNone builds a schedule for the case where no adjoint calculation
// will be performed. Online: max_n need not be known up front.
func NewNone() Schedule {
	return &noneSchedule{}
}

func (s *noneSchedule) NextAction() Action {
	if !s.openForwardEmitted {
		s.openForwardEmitted = true
		n1 := IntMax
		if s.cur.maxN != nil {
			n1 = *s.cur.maxN
		}
		return Forward{N0: s.cur.n, N1: n1, Storage: NONE}
	}
	if s.cur.maxN != nil && !s.endForwardEmitted {
		s.endForwardEmitted = true
		s.cur.n = *s.cur.maxN
		return EndForward{}
	}
	if s.endForwardEmitted {
		return ErrorAction{Err: &IterationAfterExhaustedError{Algorithm: "None"}}
	}
	return EndReverse{}
}

func (s *noneSchedule) Finalize(n1 int) error { return s.cur.finalize(n1) }

func (s *noneSchedule) MaxN() *int { return s.cur.MaxN() }

func (s *noneSchedule) UsesDiskStorage() bool { return false }

func (s *noneSchedule) IsExhausted() bool { return s.endForwardEmitted }

func (s *noneSchedule) Stats() Stats {
	var st Stats
	if s.cur.maxN != nil {
		st.ForwardSteps = *s.cur.maxN
	}
	return st
}
