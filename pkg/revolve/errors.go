package revolve

import (
	"errors"
	"fmt"
)

// Sentinel errors for schedule construction and iteration. Typed errors
// below wrap one of these so callers can use errors.Is without caring
// which algorithm produced the failure.
var (
	// ErrInvalidBudget indicates snaps_in_ram + snaps_on_disk is too small
	// for the chosen algorithm to solve the instance.
	ErrInvalidBudget = errors.New("invalid checkpoint budget")

	// ErrInvalidSteps indicates max_n < 1 for an algorithm that requires
	// max_n at construction.
	ErrInvalidSteps = errors.New("invalid step count")

	// ErrFinalizeConflict indicates Finalize was called with n1 behind the
	// forward frontier, or with a value conflicting with a prior Finalize.
	ErrFinalizeConflict = errors.New("finalize conflict")

	// ErrIterationAfterExhausted indicates NextAction was called after
	// IsExhausted on a schedule that does not support re-entry.
	ErrIterationAfterExhausted = errors.New("iteration after exhausted")

	// ErrInternalInvariant indicates a broken invariant in the planner or
	// adapter. Reaching this is always a bug.
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// InvalidBudgetError reports a storage budget too small to solve the
// requested instance.
type InvalidBudgetError struct {
	Algorithm   string
	SnapsInRAM  int
	SnapsOnDisk int
	RequiredMin int
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("%s: budget %d RAM + %d disk slots is below the required minimum of %d",
		e.Algorithm, e.SnapsInRAM, e.SnapsOnDisk, e.RequiredMin)
}

func (e *InvalidBudgetError) Unwrap() error { return ErrInvalidBudget }

// InvalidStepsError reports a non-positive max_n where one is required.
type InvalidStepsError struct {
	Algorithm string
	MaxN      int
}

func (e *InvalidStepsError) Error() string {
	return fmt.Sprintf("%s: max_n must be positive, got %d", e.Algorithm, e.MaxN)
}

func (e *InvalidStepsError) Unwrap() error { return ErrInvalidSteps }

// InvalidPeriodError reports a non-positive period for TwoLevel.
type InvalidPeriodError struct {
	Period int
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("TwoLevel: period must be positive, got %d", e.Period)
}

func (e *InvalidPeriodError) Unwrap() error { return ErrInvalidSteps }

// FinalizeConflictError reports a Finalize call that conflicts with a
// previously fixed max_n, or that lands behind the forward frontier.
type FinalizeConflictError struct {
	Requested int
	Current   int
	Frontier  int
}

func (e *FinalizeConflictError) Error() string {
	if e.Current != 0 {
		return fmt.Sprintf("finalize(%d) conflicts with previously finalized max_n=%d", e.Requested, e.Current)
	}
	return fmt.Sprintf("finalize(%d) is behind the forward frontier (n=%d)", e.Requested, e.Frontier)
}

func (e *FinalizeConflictError) Unwrap() error { return ErrFinalizeConflict }

// IterationAfterExhaustedError reports a NextAction call on an exhausted,
// non-reentrant schedule.
type IterationAfterExhaustedError struct {
	Algorithm string
}

func (e *IterationAfterExhaustedError) Error() string {
	return fmt.Sprintf("%s: NextAction called after the schedule is exhausted", e.Algorithm)
}

func (e *IterationAfterExhaustedError) Unwrap() error { return ErrIterationAfterExhausted }

// InternalInvariantError reports a defensive check that should be
// unreachable: a bug in a planner or adapter, not a misuse by the caller.
type InternalInvariantError struct {
	Algorithm string
	Detail    string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("%s: internal invariant violated: %s", e.Algorithm, e.Detail)
}

func (e *InternalInvariantError) Unwrap() error { return ErrInternalInvariant }
