package binomial

import "sort"

// Action mirrors the subset of the public revolve.Action variants that the
// Multistage generator emits, kept local to this package so it has no
// dependency on the revolve package's StorageKind/Action types. Callers
// translate these into their own Action values.
type ActionKind int

const (
	KForward ActionKind = iota
	KReverse
	KCopy
	KMove
	KEndForward
	KEndReverse
)

// Slot identifies a storage location: either one of the ram/disk
// checkpointing units (by stack depth index) or the ephemeral work buffer.
type Slot struct {
	// Unit is true for a checkpointing-unit slot; when false this Slot
	// represents the work buffer and Index is meaningless.
	Unit  bool
	Index int
}

// GeneratedAction is one step of the Multistage action stream, storage left
// as a unit index for the caller to resolve against its RAM/disk
// allocation.
type GeneratedAction struct {
	Kind                   ActionKind
	N0, N1                 int
	WriteICS, WriteAdjDeps bool
	ClearAdjDeps           bool
	From, To               Slot
	// UnitIndex is the checkpointing-unit slot touched by a write, copy, or
	// move (Unit-typed slot index); -1 for actions that touch no unit.
	UnitIndex int
}

// Generate ports MultistageCheckpointSchedule._iterator directly: it builds
// the full offline action stream for max_n forward steps using exactly
// units checkpointing units (RAM+disk combined, physical storage kind
// resolved later by the caller).
func Generate(maxN, units int, trajectory Trajectory) ([]GeneratedAction, error) {
	if maxN < 2 {
		return nil, errInvalidMaxN(maxN)
	}
	units = maxInt(minInt(units, maxN-1), 0)

	var actions []GeneratedAction
	var snapshots []int // stack of n0 values, by checkpointing-unit slot
	n, r := 0, 0

	write := func(n0 int) (int, error) {
		if len(snapshots) >= units {
			return 0, errUnexpectedSnapshot()
		}
		snapshots = append(snapshots, n0)
		return len(snapshots) - 1, nil
	}

	for n < maxN-1 {
		nSnapshots := units - len(snapshots)
		n0 := n
		adv, err := NAdvance(maxN-n0, nSnapshots, trajectory)
		if err != nil {
			return nil, err
		}
		n1 := n0 + adv
		n = n1
		slot, err := write(n0)
		if err != nil {
			return nil, err
		}
		actions = append(actions, GeneratedAction{
			Kind: KForward, N0: n0, N1: n1, WriteICS: true,
			To: Slot{Unit: true, Index: slot}, UnitIndex: slot,
		})
	}
	if n != maxN-1 {
		return nil, errInvalidState("forward phase did not reach max_n-1")
	}

	n++
	actions = append(actions, GeneratedAction{
		Kind: KForward, N0: n - 1, N1: n, WriteAdjDeps: true,
		To: Slot{Unit: false}, UnitIndex: -1,
	})
	actions = append(actions, GeneratedAction{Kind: KEndForward})

	r++
	actions = append(actions, GeneratedAction{Kind: KReverse, N1: n, N0: n - 1, ClearAdjDeps: true})

	for r < maxN {
		if len(snapshots) == 0 {
			return nil, errInvalidState("reverse phase ran out of checkpointing units")
		}
		cpN := snapshots[len(snapshots)-1]
		cpSlot := len(snapshots) - 1

		if cpN == maxN-r-1 {
			snapshots = snapshots[:len(snapshots)-1]
			n = cpN
			actions = append(actions, GeneratedAction{
				Kind: KMove, N0: cpN,
				From: Slot{Unit: true, Index: cpSlot}, To: Slot{Unit: false},
				UnitIndex: cpSlot,
			})
		} else {
			n = cpN
			actions = append(actions, GeneratedAction{
				Kind: KCopy, N0: cpN,
				From: Slot{Unit: true, Index: cpSlot}, To: Slot{Unit: false},
				UnitIndex: cpSlot,
			})

			nSnapshots := units - len(snapshots) + 1
			n0 := n
			adv, err := NAdvance(maxN-r-n0, nSnapshots, trajectory)
			if err != nil {
				return nil, err
			}
			n1 := n0 + adv
			n = n1
			actions = append(actions, GeneratedAction{
				Kind: KForward, N0: n0, N1: n1,
				To: Slot{Unit: false}, UnitIndex: -1,
			})

			for n < maxN-r-1 {
				nSnapshots := units - len(snapshots)
				n0 := n
				adv, err := NAdvance(maxN-r-n0, nSnapshots, trajectory)
				if err != nil {
					return nil, err
				}
				n1 := n0 + adv
				n = n1
				slot, err := write(n0)
				if err != nil {
					return nil, err
				}
				actions = append(actions, GeneratedAction{
					Kind: KForward, N0: n0, N1: n1, WriteICS: true,
					To: Slot{Unit: true, Index: slot}, UnitIndex: slot,
				})
			}
			if n != maxN-r-1 {
				return nil, errInvalidState("inner forward rebuild did not reach target")
			}
		}

		n++
		actions = append(actions, GeneratedAction{
			Kind: KForward, N0: n - 1, N1: n, WriteAdjDeps: true,
			To: Slot{Unit: false}, UnitIndex: -1,
		})
		r++
		actions = append(actions, GeneratedAction{Kind: KReverse, N1: n, N0: n - 1, ClearAdjDeps: true})
	}
	if r != maxN {
		return nil, errInvalidState("reverse phase did not reach max_n")
	}
	if len(snapshots) != 0 {
		return nil, errInvalidState("checkpointing units left resident at exhaustion")
	}

	actions = append(actions, GeneratedAction{Kind: KEndReverse})
	return actions, nil
}

// Weights runs Generate and tabulates, per checkpointing-unit slot index,
// the accumulated write/read cost. It is the dry run behind
// AllocateSnapshots: the slot index touched by a write/copy/move action
// does not depend on which physical storage the slot resolves to, so the
// weights can be computed before that resolution is known.
func Weights(maxN, units int, trajectory Trajectory, writeWeight, readWeight, deleteWeight float64) ([]float64, error) {
	actions, err := Generate(maxN, units, trajectory)
	if err != nil {
		return nil, err
	}
	weights := make([]float64, units)
	for _, a := range actions {
		switch a.Kind {
		case KForward:
			if a.WriteICS {
				weights[a.UnitIndex] += writeWeight
			}
		case KCopy:
			weights[a.UnitIndex] += readWeight
		case KMove:
			weights[a.UnitIndex] += readWeight + deleteWeight
		}
	}
	return weights, nil
}

// AllocateSnapshots assigns each of the units checkpointing-unit slots to
// RAM or disk: the ramSlots slots with the highest accumulated read/write
// weight go to RAM, the rest to disk. For the default weights (write=1,
// read=1, delete=0) this reproduces the distribution in Stumm & Walther
// (2009), as noted in the docstring of the reference allocate_snapshots.
func AllocateSnapshots(maxN, ramSlots, diskSlots int, trajectory Trajectory) (onRAM []bool, err error) {
	units := minInt(ramSlots+diskSlots, maxInt(maxN-1, 0))
	weights, err := Weights(maxN, units, trajectory, 1.0, 1.0, 0.0)
	if err != nil {
		return nil, err
	}

	order := make([]int, units)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})

	onRAM = make([]bool, units)
	top := minInt(ramSlots, units)
	for _, idx := range order[:top] {
		onRAM[idx] = true
	}
	return onRAM, nil
}
