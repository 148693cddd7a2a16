// Package costtable builds the dynamic-programming cost tables that back
// the Revolve, Disk-Revolve, Periodic-Disk-Revolve, H-Revolve, and Mixed
// checkpointing schedules. Each table stores the optimal makespan of
// running l forward steps under a given memory budget, plus enough
// decision state to reconstruct the action sequence that achieves it.
package costtable

// INF marks a table cell that has not been computed or is infeasible
// under the given budget.
const INF = 1e18

// Params bundles the per-access cost weights used by every table in this
// package. Times are in abstract cost units; callers decide what a unit
// means (seconds, FLOPs, whatever the driver being checkpointed uses).
type Params struct {
	UF float64 // cost of one forward step
	UB float64 // cost of one backward (adjoint) step
	WD float64 // cost of writing one checkpoint to disk
	RD float64 // cost of reading one checkpoint from disk
	WM float64 // cost of writing one checkpoint to RAM
	RM float64 // cost of reading one checkpoint from RAM
}

// Table is a dense l-indexed cost table for a fixed memory budget cm.
// Table[l] is the optimal cost of l forward steps; len(Table) == lmax+1.
type Table []float64

func newTable(lmax int) Table {
	t := make(Table, lmax+1)
	for i := range t {
		t[i] = INF
	}
	return t
}

// Get returns t[l], or INF if l is out of range.
func (t Table) Get(l int) float64 {
	if l < 0 || l >= len(t) {
		return INF
	}
	return t[l]
}

// argminSplit returns the split index j in [lo, hi] minimizing cost(j), and
// the minimizing value. hi must be >= lo, the caller guarantees at least one
// candidate. Ties resolve to the smallest j, matching the classical Revolve
// tie-break rule of preferring the earliest checkpoint split.
func argminSplit(lo, hi int, cost func(j int) float64) (bestJ int, bestV float64) {
	bestJ, bestV = lo, cost(lo)
	for j := lo + 1; j <= hi; j++ {
		v := cost(j)
		if v < bestV {
			bestV, bestJ = v, j
		}
	}
	return bestJ, bestV
}
