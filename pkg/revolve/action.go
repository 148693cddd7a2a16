package revolve

import "fmt"

// StorageKind identifies where checkpoint data for a step lives.
type StorageKind int

const (
	// NONE is the explicit "no storage" marker used by the None schedule.
	NONE StorageKind = iota
	// RAM is fast, capacity-limited storage.
	RAM
	// DISK is slow, capacity-limited, costlier-to-access storage.
	DISK
	// WORK is the ephemeral buffer the driver holds for the step currently
	// being processed. It is never persisted and is used as a sink/source
	// for Copy and Move.
	WORK
)

// String returns the storage kind's name.
func (s StorageKind) String() string {
	switch s {
	case NONE:
		return "NONE"
	case RAM:
		return "RAM"
	case DISK:
		return "DISK"
	case WORK:
		return "WORK"
	default:
		return fmt.Sprintf("StorageKind(%d)", int(s))
	}
}

// IntMax is the sentinel meaning "as far as the driver will go" for the
// n1 field of a Forward action on an online (unknown max_n) schedule. It is
// not a true infinity; Finalize replaces it with the real upper bound.
const IntMax = int(^uint(0) >> 1)

// Action is one instruction in a schedule's action stream. It is a closed
// tagged variant: Forward, Reverse, Copy, Move, EndForward, EndReverse,
// ErrorAction.
type Action interface {
	// isAction restricts Action to the variants defined in this package.
	isAction()
}

// Forward advances the forward solver from the start of step N0 to the
// start of step N1 (N1 > N0). WriteICS requests persisting the restart
// state of step N0 into Storage. WriteAdjDeps requests persisting the
// adjoint-dependency data produced for each step in [N0, N1) into Storage.
// If both are true, both end up in the same Storage.
type Forward struct {
	N0, N1       int
	WriteICS     bool
	WriteAdjDeps bool
	Storage      StorageKind
}

func (Forward) isAction() {}

// String renders the action in the form used throughout spec fixtures and
// the original implementation's repr, e.g. Forward(0, 2, true, false, RAM).
func (f Forward) String() string {
	return fmt.Sprintf("Forward(%d, %s, %v, %v, %s)", f.N0, formatN(f.N1), f.WriteICS, f.WriteAdjDeps, f.Storage)
}

func formatN(n int) string {
	if n == IntMax {
		return "IntMax"
	}
	return fmt.Sprintf("%d", n)
}

// Reverse advances the adjoint from step N1 back to step N0 (N0 < N1).
// After this action, the adjoint-dependency data for the consumed steps is
// considered consumed; if ClearAdjDeps is true the driver must release it.
type Reverse struct {
	N1, N0       int
	ClearAdjDeps bool
}

func (Reverse) isAction() {}

func (r Reverse) String() string {
	return fmt.Sprintf("Reverse(%d, %d, %v)", r.N1, r.N0, r.ClearAdjDeps)
}

// Copy duplicates the data for step N from FromStorage to ToStorage. The
// source retains its copy.
type Copy struct {
	N                      int
	FromStorage, ToStorage StorageKind
}

func (Copy) isAction() {}

func (c Copy) String() string {
	return fmt.Sprintf("Copy(%d, %s, %s)", c.N, c.FromStorage, c.ToStorage)
}

// Move relocates the data for step N from FromStorage to ToStorage. The
// source no longer holds it afterwards.
type Move struct {
	N                      int
	FromStorage, ToStorage StorageKind
}

func (Move) isAction() {}

func (m Move) String() string {
	return fmt.Sprintf("Move(%d, %s, %s)", m.N, m.FromStorage, m.ToStorage)
}

// EndForward is emitted exactly once, after the last forward action, when
// forward has reached max_n.
type EndForward struct{}

func (EndForward) isAction() {}

func (EndForward) String() string { return "EndForward()" }

// EndReverse is emitted when the adjoint has returned to step 0. After
// this, IsExhausted reports whether new adjoint sweeps can begin.
type EndReverse struct{}

func (EndReverse) isAction() {}

func (EndReverse) String() string { return "EndReverse()" }

// ErrorAction is returned in place of a real instruction when NextAction
// is called on a schedule that is exhausted and does not support
// re-entry. Err is always non-nil and wraps ErrIterationAfterExhausted.
type ErrorAction struct {
	Err error
}

func (ErrorAction) isAction() {}

func (e ErrorAction) String() string { return fmt.Sprintf("Error(%s)", e.Err) }
