package oplist

import "fmt"

type storageKey struct {
	n     int
	level Level
}

// Validate checks that every Read and Discard references a step whose
// data was Written to that level and not already discarded, and that
// every Forward advances (N1 > N0) and every Backward retreats (N0 > N1).
// It does not check against a max_n bound, and it does not count
// resident checkpoints against a storage budget; callers with a known
// max_n should do that separately.
func Validate(ops []Op) error {
	resident := make(map[storageKey]bool)
	for i, op := range ops {
		switch op.Kind {
		case KForward:
			if op.N1 <= op.N0 {
				return fmt.Errorf("op %d: invalid Forward(%d, %d)", i, op.N0, op.N1)
			}
		case KBackward:
			if op.N0 <= op.N1 {
				return fmt.Errorf("op %d: invalid Backward(%d, %d)", i, op.N0, op.N1)
			}
		case KWrite:
			resident[storageKey{op.N, op.Level}] = true
		case KRead:
			if !resident[storageKey{op.N, op.Level}] {
				return fmt.Errorf("op %d: Read(%d, %v) with no matching resident Write", i, op.N, op.Level)
			}
		case KDiscard:
			if !resident[storageKey{op.N, op.Level}] {
				return fmt.Errorf("op %d: Discard(%d, %v) with no matching resident Write", i, op.N, op.Level)
			}
			delete(resident, storageKey{op.N, op.Level})
		}
	}
	return nil
}
