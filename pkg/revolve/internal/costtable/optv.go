package costtable

// OptVTable holds Opt_1D[l]: the optimal makespan of l forward steps with
// cm RAM slots available, given that step 0's restart state is already
// resident on disk. Periodic-Disk-Revolve uses it to choose its period
// (see BestPeriod); the Disk-Revolve table does not use it.
//
// Only the "one read disk" variant is implemented: once the initial disk
// checkpoint is read back, the remainder of the sweep never revisits disk,
// so the recursive term falls back to the plain Opt_0 table rather than
// Opt_1D itself.
type OptVTable struct {
	cost Table
}

// BuildOptV computes Opt_1D[l] for l = 0..lmax given a fixed RAM budget cm.
//
//	Opt_1D[0] = ub
//	Opt_1D[1] = uf + 2*ub + rd   (cm == 0)
//	           = uf + 2*ub       (cm >= 1)
//	Opt_1D[l] = min(Opt_0[cm][l], min_{j=1..l-1} j*uf + Opt_0[cm][l-j] + rd + Opt_0[cm][j-1])
func BuildOptV(lmax, cm int, opt0 *Opt0Table, p Params) *OptVTable {
	cost := newTable(lmax)
	cost[0] = p.UB
	if lmax >= 1 {
		if cm == 0 {
			cost[1] = p.UF + 2*p.UB + p.RD
		} else {
			cost[1] = p.UF + 2*p.UB
		}
	}
	for l := 2; l <= lmax; l++ {
		_, best := argminSplit(1, l-1, func(j int) float64 {
			return float64(j)*p.UF + opt0.Get(cm, l-j) + p.RD + opt0.Get(cm, j-1)
		})
		if v := opt0.Get(cm, l); v < best {
			best = v
		}
		cost[l] = best
	}
	return &OptVTable{cost: cost}
}

// Get returns Opt_1D[l].
func (t *OptVTable) Get(l int) float64 { return t.cost.Get(l) }

// UsesDisk reports whether the optimal plan for l steps actually reads
// back disk at all (false means it is cheaper to stay entirely in RAM,
// i.e. behave exactly like Opt_0).
func (t *OptVTable) UsesDisk(l int, opt0 *Opt0Table, cm int) bool {
	return t.Get(l) < opt0.Get(cm, l)
}

// BestSplit returns the split index j in [1, l-1] minimizing
// j*uf + Opt_0[cm][l-j] + rd + Opt_0[cm][j-1].
func (t *OptVTable) BestSplit(l, cm int, opt0 *Opt0Table, p Params) int {
	j, _ := argminSplit(1, l-1, func(j int) float64 {
		return float64(j)*p.UF + opt0.Get(cm, l-j) + p.RD + opt0.Get(cm, j-1)
	})
	return j
}
