package costtable

// Opt0Table holds the classical Revolve cost table Opt_0[m][l]: the
// optimal makespan of l forward steps using exactly m RAM checkpoint
// slots and no disk. Indexed Opt_0[m][l], m in [0, mmax], l in [0, lmax].
type Opt0Table struct {
	cost []Table
}

// BuildOpt0 computes Opt_0[m][l] for m = 0..mmax and l = 0..lmax.
//
//	Opt_0[m][0] = ub
//	Opt_0[m][1] = uf + 2*ub          (m >= 1)
//	Opt_0[1][l] = (l+1)*ub + l*(l+1)/2*uf
//	Opt_0[m][l] = min_{j=1..l-1} j*uf + Opt_0[m-1][l-j] + Opt_0[m][j-1]
func BuildOpt0(lmax, mmax int, p Params) *Opt0Table {
	cost := make([]Table, mmax+1)
	for m := 0; m <= mmax; m++ {
		cost[m] = newTable(lmax)
		cost[m][0] = p.UB
	}
	for m := 1; m <= mmax; m++ {
		if lmax >= 1 {
			cost[m][1] = p.UF + 2*p.UB
		}
	}
	if mmax >= 1 {
		for l := 2; l <= lmax; l++ {
			fl := float64(l)
			cost[1][l] = (fl+1)*p.UB + fl*(fl+1)/2*p.UF
		}
	}
	for m := 2; m <= mmax; m++ {
		for l := 2; l <= lmax; l++ {
			_, v := argminSplit(1, l-1, func(j int) float64 {
				return float64(j)*p.UF + cost[m-1][l-j] + cost[m][j-1]
			})
			cost[m][l] = v
		}
	}
	return &Opt0Table{cost: cost}
}

// Get returns Opt_0[m][l].
func (t *Opt0Table) Get(m, l int) float64 {
	if m < 0 || m >= len(t.cost) {
		return INF
	}
	return t.cost[m].Get(l)
}

// BestSplit returns the split index j in [1, l-1] minimizing
// j*uf + Opt_0[m-1][l-j] + Opt_0[m][j-1], used to reconstruct the
// Revolve action sequence for l >= 2, m >= 2.
func (t *Opt0Table) BestSplit(m, l int, p Params) int {
	j, _ := argminSplit(1, l-1, func(j int) float64 {
		return float64(j)*p.UF + t.Get(m-1, l-j) + t.Get(m, j-1)
	})
	return j
}
