package revolve

// Schedule produces checkpointing actions on demand. It is a stateful,
// single-threaded iterator: each call to NextAction computes and returns
// exactly one action.
type Schedule interface {
	// NextAction returns the next action in the stream.
	NextAction() Action

	// Finalize fixes max_n for an online schedule. It is an error to call
	// Finalize with n1 less than the current forward frontier, or with a
	// value that conflicts with a previously fixed max_n. Schedules that
	// do not run online accept only their own max_n and return an error
	// wrapping ErrFinalizeConflict for any other value.
	Finalize(n1 int) error

	// MaxN returns the number of forward steps, or nil if not yet fixed.
	MaxN() *int

	// UsesDiskStorage reports whether this schedule may use DISK storage.
	UsesDiskStorage() bool

	// IsExhausted reports whether no more useful work remains.
	IsExhausted() bool

	// Stats returns informational counters accumulated so far.
	Stats() Stats
}

// Stats holds informational counters accumulated by a schedule. These are
// not part of the driver contract; they exist for observability and
// examples.
type Stats struct {
	ForwardSteps   int
	Recomputations int
	WritesRAM      int
	WritesDisk     int
	ReadsRAM       int
	ReadsDisk      int
	DiscardsRAM    int
	DiscardsDisk   int
}

// cursor tracks the forward/reverse frontier shared by every schedule
// implementation, mirroring CheckpointSchedule's _n/_r/_max_n fields in the
// original implementation.
type cursor struct {
	n    int
	r    int
	maxN *int
}

func (c *cursor) MaxN() *int {
	if c.maxN == nil {
		return nil
	}
	n := *c.maxN
	return &n
}

// finalize implements the shared Finalize semantics: idempotent when called
// with the value already fixed, an error when called with a conflicting
// value or one behind the forward frontier.
func (c *cursor) finalize(n1 int) error {
	if n1 < 1 {
		return &InvalidStepsError{Algorithm: "finalize", MaxN: n1}
	}
	if c.maxN == nil {
		if c.n > n1 {
			return &FinalizeConflictError{Requested: n1, Frontier: c.n}
		}
		c.n = n1
		c.maxN = &n1
		return nil
	}
	if *c.maxN != n1 {
		return &FinalizeConflictError{Requested: n1, Current: *c.maxN}
	}
	return nil
}
