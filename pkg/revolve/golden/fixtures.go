package golden

import "github.com/randalmurphal/revolve/pkg/revolve"

// Fixture pairs a stable key with the action stream a correctly
// constructed schedule must produce for the params the key names.
type Fixture struct {
	Key     string
	Actions []revolve.Action
}

// Fixtures returns the seed golden corpus: one entry per canonical
// scenario. Seed(store Store) and the tests in golden_test.go treat
// this as the ground truth action stream for each scenario's params;
// disagreement between a schedule's live output and its fixture here is a
// regression, not a fixture bug, unless the params themselves are wrong.
func Fixtures() []Fixture {
	return []Fixture{
		{Key: "none/max_n=4", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: revolve.IntMax, Storage: revolve.NONE},
			revolve.EndForward{},
		}},
		{Key: "single_memory/max_n=4", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: revolve.IntMax, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.EndForward{},
			revolve.Reverse{N1: 4, N0: 0, ClearAdjDeps: true},
			revolve.EndReverse{},
		}},
		{Key: "single_disk/max_n=4/move_data=true", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: revolve.IntMax, WriteAdjDeps: true, Storage: revolve.DISK},
			revolve.EndForward{},
			revolve.Move{N: 3, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
			revolve.Move{N: 2, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
			revolve.Move{N: 1, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
			revolve.Move{N: 0, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
			revolve.EndReverse{},
		}},
		// Revolve(max_n=4, snaps_in_ram=2), default cost params. The
		// canonical Griewank-Walther example: two RAM checkpoints at
		// steps 0 and 2; the reverse sweep re-runs [2,3), [0,1), [1,2)
		// and [0,1) from them.
		{Key: "revolve/max_n=4/snaps_in_ram=2", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: 2, WriteICS: true, Storage: revolve.RAM},
			revolve.Forward{N0: 2, N1: 3, WriteICS: true, Storage: revolve.RAM},
			revolve.Forward{N0: 3, N1: 4, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.EndForward{},
			revolve.Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
			revolve.Move{N: 2, FromStorage: revolve.RAM, ToStorage: revolve.WORK},
			revolve.Forward{N0: 2, N1: 3, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
			revolve.Copy{N: 0, FromStorage: revolve.RAM, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 1, Storage: revolve.WORK},
			revolve.Forward{N0: 1, N1: 2, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
			revolve.Move{N: 0, FromStorage: revolve.RAM, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
			revolve.EndReverse{},
		}},
		// Multistage(max_n=4, snaps_in_ram=1, snaps_on_disk=1), maximum
		// trajectory. Stumm-Walther allocation puts the higher-weight
		// slot (step 0, touched by a write plus two restores) in RAM and
		// the lower-weight slot (step 2, one write one restore) on disk.
		{Key: "multistage/max_n=4/snaps_in_ram=1/snaps_on_disk=1", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: 2, WriteICS: true, Storage: revolve.RAM},
			revolve.Forward{N0: 2, N1: 3, WriteICS: true, Storage: revolve.DISK},
			revolve.Forward{N0: 3, N1: 4, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.EndForward{},
			revolve.Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
			revolve.Move{N: 2, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Forward{N0: 2, N1: 3, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
			revolve.Copy{N: 0, FromStorage: revolve.RAM, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 1, Storage: revolve.WORK},
			revolve.Forward{N0: 1, N1: 2, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
			revolve.Move{N: 0, FromStorage: revolve.RAM, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
			revolve.EndReverse{},
		}},
		// Mixed(max_n=4, snaps_on_disk=1), default storage=DISK. The
		// single unit holds a full restart [0,3) until the reverse sweep
		// downgrades it to an adjoint-dependency checkpoint at step 0,
		// reusing the same disk slot for a different purpose.
		{Key: "mixed/max_n=4/snaps_on_disk=1", Actions: []revolve.Action{
			revolve.Forward{N0: 0, N1: 3, WriteICS: true, Storage: revolve.DISK},
			revolve.Forward{N0: 3, N1: 4, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.EndForward{},
			revolve.Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
			revolve.Copy{N: 0, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 2, Storage: revolve.WORK},
			revolve.Forward{N0: 2, N1: 3, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
			revolve.Move{N: 0, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: revolve.DISK},
			revolve.Forward{N0: 1, N1: 2, WriteAdjDeps: true, Storage: revolve.WORK},
			revolve.Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
			revolve.Move{N: 0, FromStorage: revolve.DISK, ToStorage: revolve.WORK},
			revolve.Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
			revolve.EndReverse{},
		}},
	}
}

// Seed saves every Fixture into store under its Key, overwriting whatever
// is already there. Convenient for populating a fresh SQLiteStore from
// the in-package corpus.
func Seed(store Store) error {
	for _, f := range Fixtures() {
		if err := store.Save(f.Key, f.Actions); err != nil {
			return err
		}
	}
	return nil
}
