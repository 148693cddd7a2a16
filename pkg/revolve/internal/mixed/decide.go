// Package mixed generates the action stream for the Mixed checkpointing
// schedule: a single pool of checkpointing units, each holding either a
// full restart checkpoint or adjoint-dependency data for one step.
//
// Grounded on
// _examples/original_source/checkpoint_schedules/mixed.py's
// mixed_step_memoization and MixedCheckpointSchedule._iterator.
package mixed

// stepKind mirrors StepType.FORWARD_REVERSE / WRITE_ADJ_DEPS / WRITE_ICS
// from the reference (StepType.FORWARD and StepType.NONE never appear in a
// decision returned by decide, so they have no analog here).
type stepKind int

const (
	stepForwardReverse stepKind = iota
	stepWriteAdjDeps
	stepWriteICS
)

// decision is the optimal action for n remaining forward steps with s
// checkpointing units available: advance n1 steps using kind, at the given
// total cost.
type decision struct {
	kind stepKind
	n1   int
	cost int
}

// decide returns the memoized optimal decision for (n, s), matching
// mixed_step_memoization(n, s) exactly, including its tie-break (the loop
// keeps overwriting on cost<=best, so the largest minimizing split wins;
// the adjoint-dependency option only replaces it on a strict improvement).
func decide(n, s int, memo map[[2]int]decision) decision {
	key := [2]int{n, s}
	if d, ok := memo[key]; ok {
		return d
	}
	var d decision
	switch {
	case n == 1:
		d = decision{kind: stepForwardReverse, n1: 1, cost: 1}
	case n <= s+1:
		d = decision{kind: stepWriteAdjDeps, n1: 1, cost: n}
	case s == 1:
		d = decision{kind: stepWriteICS, n1: n - 1, cost: n*(n+1)/2 - 1}
	default:
		var best decision
		haveBest := false
		for i := 2; i < n; i++ {
			cost := i + decide(i, s, memo).cost + decide(n-i, s-1, memo).cost
			if !haveBest || cost <= best.cost {
				best = decision{kind: stepWriteICS, n1: i, cost: cost}
				haveBest = true
			}
		}
		if adjCost := 1 + decide(n-1, s-1, memo).cost; adjCost < best.cost {
			best = decision{kind: stepWriteAdjDeps, n1: 1, cost: adjCost}
		}
		d = best
	}
	memo[key] = d
	return d
}
