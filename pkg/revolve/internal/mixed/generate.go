package mixed

import "fmt"

// ActionKind enumerates the abstract actions Generate emits, one level
// below the public revolve.Action: the same shape, but storage is only
// ever "ephemeral" (WORK) or "the one configured persistent kind", since
// Mixed (unlike Multistage) never splits its pool across RAM and disk.
type ActionKind int

const (
	KForward ActionKind = iota
	KReverse
	KCopy
	KMove
	KEndForward
	KEndReverse
)

// GeneratedAction is one step of the Mixed action stream.
type GeneratedAction struct {
	Kind ActionKind

	N0, N1 int // Forward/Reverse step range; N0 alone for Copy/Move

	WriteICS     bool // Forward only
	WriteAdjDeps bool // Forward only
	Persistent   bool // Forward/Copy/Move: true resolves to the configured
	// persistent storage kind, false resolves to WORK

	ClearAdjDeps bool // Reverse only
}

func errInvalidState(detail string) error {
	return fmt.Errorf("mixed: invalid checkpointing state: %s", detail)
}

func errInvalidForwardStep() error {
	return fmt.Errorf("mixed: invalid forward step")
}

func errInvalidActionIndex() error {
	return fmt.Errorf("mixed: invalid action index")
}

type snapshot struct {
	kind   stepKind
	n0, n1 int
}

// Generate builds the full offline Mixed action stream for maxN forward
// steps with snapshots checkpointing units, ported directly from
// MixedCheckpointSchedule._iterator.
func Generate(maxN, snapshots int) ([]GeneratedAction, error) {
	if maxN < 1 {
		return nil, fmt.Errorf("mixed: max_n must be at least 1, got %d", maxN)
	}
	if snapshots < minInt(1, maxN-1) || snapshots > maxInt(0, maxN-1) {
		return nil, fmt.Errorf("mixed: invalid number of snapshots %d for max_n %d", snapshots, maxN)
	}

	memo := map[[2]int]decision{}
	snapshotN := map[int]bool{}
	var stack []snapshot
	var actions []GeneratedAction

	n, r := 0, 0
	for {
		lastKind := stepForwardReverse
		sawStep := false

		for n < maxN-r {
			n0 := n
			reuse := snapshotN[n0]
			budget := snapshots - len(stack)
			if reuse {
				budget++
			}
			d := decide(maxN-r-n0, budget, memo)
			n1 := d.n1 + n0

			if reuse {
				top := stack[len(stack)-1]
				if top.kind != d.kind || top.n0 != n0 || top.n1 < n1 {
					return nil, errInvalidState("stale snapshot reused with a different decision")
				}
			}

			switch d.kind {
			case stepForwardReverse:
				if n1 > n0+1 {
					n = n1 - 1
					actions = append(actions, GeneratedAction{Kind: KForward, N0: n0, N1: n1 - 1})
				} else if n1 <= n0 {
					return nil, errInvalidForwardStep()
				}
				n++
				actions = append(actions, GeneratedAction{Kind: KForward, N0: n1 - 1, N1: n1, WriteAdjDeps: true})
			case stepWriteAdjDeps:
				if n1 != n0+1 {
					return nil, errInvalidForwardStep()
				}
				if reuse {
					return nil, errInvalidState("cannot reuse into a fresh adjoint-dependency write")
				}
				if len(stack) > snapshots-1 {
					return nil, errInvalidState("checkpointing unit budget exceeded")
				}
				n = n1
				actions = append(actions, GeneratedAction{Kind: KForward, N0: n0, N1: n1, WriteAdjDeps: true, Persistent: true})
				snapshotN[n0] = true
				stack = append(stack, snapshot{stepWriteAdjDeps, n0, n1})
			case stepWriteICS:
				if n1 <= n0+1 {
					return nil, errInvalidActionIndex()
				}
				n = n1
				if reuse {
					actions = append(actions, GeneratedAction{Kind: KForward, N0: n0, N1: n1})
				} else {
					actions = append(actions, GeneratedAction{Kind: KForward, N0: n0, N1: n1, WriteICS: true, Persistent: true})
					if len(stack) > snapshots-1 {
						return nil, errInvalidState("checkpointing unit budget exceeded")
					}
					snapshotN[n0] = true
					stack = append(stack, snapshot{stepWriteICS, n0, n1})
				}
			}
			lastKind = d.kind
			sawStep = true
		}
		if n != maxN-r {
			return nil, errInvalidState("forward frontier did not reach max_n - r")
		}
		if sawStep && lastKind != stepForwardReverse {
			return nil, errInvalidState("forward pass did not end on a forward-reverse step")
		}

		if r == 0 {
			actions = append(actions, GeneratedAction{Kind: KEndForward})
		}
		r++
		actions = append(actions, GeneratedAction{Kind: KReverse, N1: maxN - r + 1, N0: maxN - r, ClearAdjDeps: true})

		if r == maxN {
			break
		}

		top := stack[len(stack)-1]
		budget := snapshots - len(stack) + 1
		next := decide(maxN-r-top.n0, budget, memo)
		cpDelete := top.kind != next.kind

		if cpDelete {
			delete(snapshotN, top.n0)
			stack = stack[:len(stack)-1]
		}

		switch top.kind {
		case stepWriteICS:
			if top.n0+1 >= maxN-r {
				return nil, errInvalidState("cannot restart from a checkpoint this close to the frontier")
			}
			n = top.n0
		case stepWriteAdjDeps:
			if !cpDelete || top.n0+1 != maxN-r {
				return nil, errInvalidState("adjoint-dependency checkpoint must be consumed immediately")
			}
			n = top.n0 + 1
		}

		if cpDelete {
			actions = append(actions, GeneratedAction{Kind: KMove, N0: top.n0, Persistent: true})
		} else {
			actions = append(actions, GeneratedAction{Kind: KCopy, N0: top.n0, Persistent: true})
		}
	}

	if len(snapshotN) > 0 || len(stack) > 0 {
		return nil, errInvalidState("snapshots remained after the reverse sweep completed")
	}
	actions = append(actions, GeneratedAction{Kind: KEndReverse})
	return actions, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
