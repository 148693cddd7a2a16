package costtable

// DiskRevolveTable holds Opt_Inf[l]: the optimal makespan of l forward
// steps with cm RAM slots and unlimited disk. Unlike OptVTable, every
// checkpoint boundary may pay a fresh disk write, so the recurrence is
// self-referential.
type DiskRevolveTable struct {
	cost Table
}

// BuildDiskRevolve computes Opt_Inf[l] for l = 0..lmax given RAM budget cm.
//
//	Opt_Inf[0] = ub
//	Opt_Inf[1] = wd + uf + 2*ub + rd   (cm == 0)
//	            = uf + 2*ub             (cm >= 1)
//	Opt_Inf[l] = min(Opt_0[cm][l], min_{j=1..l-1} wd + j*uf + Opt_Inf[l-j] + rd + Opt_0[cm][j-1])
func BuildDiskRevolve(lmax, cm int, opt0 *Opt0Table, p Params) *DiskRevolveTable {
	cost := newTable(lmax)
	cost[0] = p.UB
	if lmax >= 1 {
		if cm == 0 {
			cost[1] = p.WD + p.UF + 2*p.UB + p.RD
		} else {
			cost[1] = p.UF + 2*p.UB
		}
	}
	for l := 2; l <= lmax; l++ {
		_, best := argminSplit(1, l-1, func(j int) float64 {
			return p.WD + float64(j)*p.UF + cost[l-j] + p.RD + opt0.Get(cm, j-1)
		})
		if v := opt0.Get(cm, l); v < best {
			best = v
		}
		cost[l] = best
	}
	return &DiskRevolveTable{cost: cost}
}

// Get returns Opt_Inf[l].
func (t *DiskRevolveTable) Get(l int) float64 { return t.cost.Get(l) }

// UsesDisk reports whether the optimal plan for l steps writes to disk at
// all.
func (t *DiskRevolveTable) UsesDisk(l int, opt0 *Opt0Table, cm int) bool {
	return t.Get(l) < opt0.Get(cm, l)
}

// BestSplit returns the split index j in [1, l-1] minimizing
// wd + j*uf + Opt_Inf[l-j] + rd + Opt_0[cm][j-1].
func (t *DiskRevolveTable) BestSplit(l, cm int, opt0 *Opt0Table, p Params) int {
	j, _ := argminSplit(1, l-1, func(j int) float64 {
		return p.WD + float64(j)*p.UF + t.Get(l-j) + p.RD + opt0.Get(cm, j-1)
	})
	return j
}
