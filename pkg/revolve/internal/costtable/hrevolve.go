package costtable

// HOptTable holds the multi-level H-Revolve cost tables HOpt and HOptP for
// a memory hierarchy with levels 0..K (level 0 is RAM, level K is the
// slowest/largest level, typically disk). cvect[k] is the slot budget at
// level k, wvect[k]/rvect[k] the write/read cost at level k.
//
// HOpt[k][l][m] is the optimal makespan of l forward steps using m slots
// of level k plus full access to all levels below k. HOptP[k][l][m] is the
// same but assumes the final result is NOT additionally written to level
// k (used internally to avoid double-charging a write that the caller
// already accounted for).
type HOptTable struct {
	K     int
	cvect []int
	wvect []float64
	rvect []float64
	opt   [][][]float64
	optp  [][][]float64
}

// BuildHOpt computes the HOpt/HOptP tables for l = 0..lmax.
func BuildHOpt(lmax int, cvect []int, wvect, rvect []float64, p Params) *HOptTable {
	K := len(cvect) - 1
	opt := make([][][]float64, len(cvect))
	optp := make([][][]float64, len(cvect))
	for k := range cvect {
		opt[k] = make([][]float64, lmax+1)
		optp[k] = make([][]float64, lmax+1)
		for l := 0; l <= lmax; l++ {
			opt[k][l] = make([]float64, cvect[k]+1)
			optp[k][l] = make([]float64, cvect[k]+1)
			for m := range opt[k][l] {
				opt[k][l][m] = INF
				optp[k][l][m] = INF
			}
		}
	}

	for k := range cvect {
		mmax := cvect[k]
		for m := 0; m <= mmax; m++ {
			opt[k][0][m] = p.UB
			optp[k][0][m] = p.UB
		}
		if lmax >= 1 {
			for m := 0; m <= mmax; m++ {
				if m == 0 && k == 0 {
					continue
				}
				optp[k][1][m] = p.UF + 2*p.UB + rvect[0]
				opt[k][1][m] = wvect[0] + optp[k][1][m]
			}
		}
	}

	// level 0
	mmax0 := cvect[0]
	for l := 2; l <= lmax; l++ {
		fl := float64(l)
		if mmax0 >= 1 {
			optp[0][l][1] = (fl+1)*p.UB + fl*(fl+1)/2*p.UF + fl*rvect[0]
			opt[0][l][1] = wvect[0] + optp[0][l][1]
		}
	}
	for m := 2; m <= mmax0; m++ {
		for l := 2; l <= lmax; l++ {
			best := optp[0][l][1]
			for j := 1; j < l; j++ {
				v := float64(j)*p.UF + opt[0][l-j][m-1] + rvect[0] + optp[0][j-1][m]
				if v < best {
					best = v
				}
			}
			optp[0][l][m] = best
			opt[0][l][m] = wvect[0] + best
		}
	}

	// levels above 0
	for k := 1; k <= K; k++ {
		mmax := cvect[k]
		belowFull := cvect[k-1]
		for l := 2; l <= lmax; l++ {
			opt[k][l][0] = opt[k-1][l][belowFull]
		}
		for m := 1; m <= mmax; m++ {
			for l := 1; l <= lmax; l++ {
				best := opt[k-1][l][belowFull]
				for j := 1; j < l; j++ {
					v := float64(j)*p.UF + opt[k][l-j][m-1] + rvect[k] + optp[k][j-1][m]
					if v < best {
						best = v
					}
				}
				optp[k][l][m] = best
				opt[k][l][m] = opt[k-1][l][belowFull]
				if v := wvect[k] + best; v < opt[k][l][m] {
					opt[k][l][m] = v
				}
			}
		}
	}

	return &HOptTable{K: K, cvect: cvect, wvect: wvect, rvect: rvect, opt: opt, optp: optp}
}

func clampBudget(cvect []int, k, m int) int {
	if m < 0 {
		return 0
	}
	if m > cvect[k] {
		return cvect[k]
	}
	return m
}

// RVect returns the read cost at level k.
func (t *HOptTable) RVect(k int) float64 { return t.rvect[k] }

// WVect returns the write cost at level k.
func (t *HOptTable) WVect(k int) float64 { return t.wvect[k] }

// Cvect returns the slot budget at level k.
func (t *HOptTable) Cvect(k int) int { return t.cvect[k] }

// Opt returns HOpt[k][l][m].
func (t *HOptTable) Opt(k, l, m int) float64 {
	m = clampBudget(t.cvect, k, m)
	if l < 0 || l >= len(t.opt[k]) {
		return INF
	}
	return t.opt[k][l][m]
}

// OptP returns HOptP[k][l][m].
func (t *HOptTable) OptP(k, l, m int) float64 {
	m = clampBudget(t.cvect, k, m)
	if l < 0 || l >= len(t.optp[k]) {
		return INF
	}
	return t.optp[k][l][m]
}

// WritesAtLevel reports whether the optimal plan for l steps at level K
// with cmem slots writes a checkpoint at level K (true), or delegates
// entirely to level K-1 without touching level K (false). Mirrors
// hrevolve_recurse's top-level write-or-delegate choice.
func (t *HOptTable) WritesAtLevel(k, l, cmem int) bool {
	if k == 0 {
		return true
	}
	return t.wvect[k]+t.OptP(k, l, cmem) < t.Opt(k-1, l, t.cvect[k-1])
}

// AuxBestSplit returns the split index j in [1, l-1] minimizing
// j*uf + HOpt[k][l-j][cmem-1] + rvect[k] + HOptP[k][j-1][cmem], the
// recurrence used inside HRevolve_aux once a checkpoint at level k has
// already been committed.
func (t *HOptTable) AuxBestSplit(k, l, cmem int, p Params) int {
	j, _ := argminSplit(1, l-1, func(j int) float64 {
		return float64(j)*p.UF + t.Opt(k, l-j, cmem-1) + t.rvect[k] + t.OptP(k, j-1, cmem)
	})
	return j
}

// AuxPrefersSplit reports whether splitting (writing an intermediate
// checkpoint partway through) beats falling back to level k-1 entirely,
// for the aux recurrence at level k >= 1.
func (t *HOptTable) AuxPrefersSplit(k, l, cmem int, p Params) bool {
	if l < 2 {
		return false
	}
	j := t.AuxBestSplit(k, l, cmem, p)
	splitCost := float64(j)*p.UF + t.Opt(k, l-j, cmem-1) + t.rvect[k] + t.OptP(k, j-1, cmem)
	return splitCost < t.Opt(k-1, l, t.cvect[k-1])
}
