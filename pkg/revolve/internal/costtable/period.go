package costtable

// BestPeriod searches periods mx in [1, mmax] for the one minimizing the
// relative cost of a periodic disk-write block, (wd + rd + Opt_1D[mx-1]) / mx.
// This is a direct search over the OptV table rather than the closed-form
// combinatorial formula the original H-Revolve paper derives; for the
// budgets this package targets (hundreds to low thousands of steps) the
// search is cheap and avoids reproducing the paper's beta-function
// bookkeeping.
func BestPeriod(mmax int, optv *OptVTable, p Params) int {
	if mmax < 1 {
		mmax = 1
	}
	relCost := func(m int) float64 {
		return (p.WD + p.RD + optv.Get(m-1)) / float64(m)
	}
	best, bestCost := 1, relCost(1)
	for m := 2; m <= mmax; m++ {
		if c := relCost(m); c < bestCost {
			best, bestCost = m, c
		}
	}
	return best
}
