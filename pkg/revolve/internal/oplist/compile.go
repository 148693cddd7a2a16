package oplist

import "github.com/randalmurphal/revolve/pkg/revolve/internal/costtable"

// CompileRevolve builds a self-contained op list advancing l forward
// steps from local step 0 and reversing all the way back to 0, using at
// most cm RAM checkpoint slots. The returned list always begins by
// writing a checkpoint of step 0 to RAM and ends by discarding it, so it
// composes safely via Shift into a larger schedule.
func CompileRevolve(l, cm int, opt0 *costtable.Opt0Table, p costtable.Params) []Op {
	if l == 0 {
		return nil
	}
	if l == 1 {
		return []Op{Write(0, LevelRAM), Forward(0, 1), Backward(1, 0), Discard(0, LevelRAM)}
	}
	if cm <= 1 {
		return compileLinearRAM(l, p)
	}
	j := opt0.BestSplit(cm, l, p)
	// The redo of [0, j) is itself a complete, self-contained Revolve
	// sub-schedule over the checkpoint we just restored; it discards
	// slot 0 on our behalf, so we never emit our own trailing Discard.
	return Concat(
		[]Op{Write(0, LevelRAM), Forward(0, j)},
		Shift(CompileRevolve(l-j, cm-1, opt0, p), j),
		[]Op{Read(0, LevelRAM)},
		CompileRevolve(j, cm, opt0, p),
	)
}

// compileLinearRAM handles the single-slot case: repeatedly re-forward
// from the one retained checkpoint, reversing one step at a time.
func compileLinearRAM(l int, p costtable.Params) []Op {
	ops := []Op{Write(0, LevelRAM)}
	for index := l - 1; index >= 0; index-- {
		if index != l-1 {
			ops = append(ops, Read(0, LevelRAM))
		}
		ops = append(ops, Forward(0, index+1), Backward(index+1, index))
	}
	ops = append(ops, Discard(0, LevelRAM))
	return ops
}

// CompileDiskRevolve builds a self-contained op list like CompileRevolve
// but additionally allowed to checkpoint to disk. It only ever performs
// one disk read per disk write (the "one read disk" restriction), so
// below the first disk boundary it always falls back to CompileRevolve.
func CompileDiskRevolve(l, cm int, opt0 *costtable.Opt0Table, dr *costtable.DiskRevolveTable, p costtable.Params) []Op {
	if l == 0 {
		return nil
	}
	if l == 1 {
		if cm == 0 {
			return []Op{Write(0, LevelDisk), Forward(0, 1), Backward(1, 0), Discard(0, LevelDisk)}
		}
		return []Op{Write(0, LevelRAM), Forward(0, 1), Backward(1, 0), Discard(0, LevelRAM)}
	}
	if !dr.UsesDisk(l, opt0, cm) {
		return CompileRevolve(l, cm, opt0, p)
	}
	j := dr.BestSplit(l, cm, opt0, p)
	return Concat(
		[]Op{Write(0, LevelDisk), Forward(0, j)},
		Shift(CompileDiskRevolve(l-j, cm, opt0, dr, p), j),
		[]Op{Read(0, LevelDisk)},
		CompileRevolve(j, cm, opt0, p),
	)
}

// CompilePeriodicDiskRevolve chunks l forward steps into period-sized
// blocks, writing a disk checkpoint at the start of each block, running
// a plain CompileRevolve within the final (possibly short) block, then
// unwinding the blocks back-to-front.
func CompilePeriodicDiskRevolve(l, cm, period int, opt0 *costtable.Opt0Table, p costtable.Params) []Op {
	if l == 0 {
		return nil
	}
	if period < 1 {
		period = 1
	}
	var ops []Op
	var blockStarts []int
	current := 0
	for l-current > period {
		ops = append(ops, Write(current, LevelDisk), Forward(current, current+period))
		blockStarts = append(blockStarts, current)
		current += period
	}
	ops = append(ops, Shift(CompileRevolve(l-current, cm, opt0, p), current)...)
	for i := len(blockStarts) - 1; i >= 0; i-- {
		start := blockStarts[i]
		ops = append(ops, Read(start, LevelDisk))
		ops = append(ops, Shift(CompileRevolve(period, cm, opt0, p), start)...)
		ops = append(ops, Discard(start, LevelDisk))
	}
	return ops
}

// CompileHRevolve builds a self-contained op list for the two-level
// (RAM, disk) H-Revolve hierarchy described by h, at the top disk
// budget cdisk.
func CompileHRevolve(l, cram, cdisk int, h *costtable.HOptTable, p costtable.Params) []Op {
	if l == 0 {
		return nil
	}
	if cdisk == 0 {
		return compileHRevolveLevel0(l, cram, h, p)
	}
	if !h.AuxPrefersSplit(1, l, cdisk, p) {
		return compileHRevolveLevel0(l, cram, h, p)
	}
	j := h.AuxBestSplit(1, l, cdisk, p)
	return Concat(
		[]Op{Write(0, LevelDisk), Forward(0, j)},
		Shift(CompileHRevolve(l-j, cram, cdisk-1, h, p), j),
		[]Op{Read(0, LevelDisk)},
		compileHRevolveLevel0(j, cram, h, p),
	)
}

// compileHRevolveLevel0 is the RAM-only base of the hierarchy: identical
// in shape to CompileRevolve but driven by h's level-0 tables, so RAM
// write/read costs (wm/rm) are respected even when nonzero.
func compileHRevolveLevel0(l, cram int, h *costtable.HOptTable, p costtable.Params) []Op {
	if l == 0 {
		return nil
	}
	if l == 1 {
		return []Op{Write(0, LevelRAM), Forward(0, 1), Backward(1, 0), Discard(0, LevelRAM)}
	}
	if cram <= 1 {
		return compileLinearRAM(l, p)
	}
	j := h.AuxBestSplit(0, l, cram, p)
	return Concat(
		[]Op{Write(0, LevelRAM), Forward(0, j)},
		Shift(compileHRevolveLevel0(l-j, cram-1, h, p), j),
		[]Op{Read(0, LevelRAM)},
		compileHRevolveLevel0(j, cram, h, p),
	)
}
