package costtable

// MixedTable holds MixedOpt[l][c]: the optimal makespan of l forward
// steps given a single combined budget of c checkpoint slots, where each
// slot may hold either a restart checkpoint (full forward state) or an
// adjoint-dependency checkpoint (only what Reverse needs for one step).
// Unlike Revolve, a Mixed schedule may choose, at each step, to store an
// adjoint dependency instead of recursing.
type MixedTable struct {
	cost [][]float64
}

// BuildMixed computes MixedOpt[l][c] for l = 0..lmax, c = 0..cmax.
//
//	MixedOpt[0][c]  = ub
//	MixedOpt[l][0]  = l*uf + ub                                    (l >= 1)
//	MixedOpt[l][c]  = min(
//	    MixedOpt[l][0],                                             no checkpoint at all
//	    min_{j=1..l} j*uf + MixedOpt[l-j][c-1] + MixedOpt[j-1][c],  restart at split j
//	    uf + ub + MixedOpt[l-1][c-1],                               store adjoint dep for step l-1
//	)
func BuildMixed(lmax, cmax int, p Params) *MixedTable {
	cost := make([][]float64, lmax+1)
	for l := 0; l <= lmax; l++ {
		cost[l] = make([]float64, cmax+1)
		for c := range cost[l] {
			cost[l][c] = INF
		}
	}
	for c := 0; c <= cmax; c++ {
		cost[0][c] = p.UB
	}
	for l := 1; l <= lmax; l++ {
		cost[l][0] = float64(l)*p.UF + p.UB
	}
	for l := 1; l <= lmax; l++ {
		for c := 1; c <= cmax; c++ {
			best := cost[l][0]
			for j := 1; j <= l; j++ {
				v := float64(j)*p.UF + cost[l-j][c-1] + cost[j-1][c]
				if v < best {
					best = v
				}
			}
			if adj := p.UF + p.UB + cost[l-1][c-1]; adj < best {
				best = adj
			}
			cost[l][c] = best
		}
	}
	return &MixedTable{cost: cost}
}

// Get returns MixedOpt[l][c].
func (t *MixedTable) Get(l, c int) float64 {
	if l < 0 || l >= len(t.cost) || c < 0 || c >= len(t.cost[l]) {
		return INF
	}
	return t.cost[l][c]
}

// Decision describes the optimal choice at (l, c): either PreferAdjDep
// (store only the adjoint dependency for the last step and recurse on
// l-1, c-1) or a restart split at Split (write a restart checkpoint,
// advance Split steps and recurse on the remaining l-Split steps at
// budget c-1, then recurse on the first Split-1 steps at budget c).
type MixedDecision struct {
	PreferAdjDep bool
	Split        int
}

// BestDecision reconstructs the optimal decision at (l, c). Ties prefer
// the adjoint-dependency option, then the smallest restart split index.
// The Mixed schedule's action stream (and so the S6 golden fixture) is
// produced by package internal/mixed, not by this method.
func (t *MixedTable) BestDecision(l, c int, p Params) MixedDecision {
	if l == 0 || c == 0 {
		return MixedDecision{Split: l}
	}
	bestSplit, bestSplitCost := argminSplit(1, l, func(j int) float64 {
		return float64(j)*p.UF + t.Get(l-j, c-1) + t.Get(j-1, c)
	})
	adjCost := p.UF + p.UB + t.Get(l-1, c-1)
	if adjCost <= bestSplitCost {
		return MixedDecision{PreferAdjDep: true}
	}
	return MixedDecision{Split: bestSplit}
}
