package revolve

import "github.com/randalmurphal/revolve/pkg/revolve/internal/oplist"

// compileActions performs the single-pass translation from a validated
// low-level op list into the public Action stream. It is grounded on the
// look-behind/look-ahead pattern used by checkpointing libraries' own
// schedule iterators: a Write immediately followed by a Forward from the
// same step becomes a single Forward action with write_ics set, while a
// Forward immediately followed by the Backward consuming its output
// carries write_adj_deps instead (into the WORK buffer, since that data
// is used by the very next Reverse and never retained). A Read
// immediately followed by a Discard of the same checkpoint becomes a
// Move rather than a Copy, since the source slot is freed anyway.
func compileActions(ops []oplist.Op, maxN int) ([]Action, Stats) {
	var actions []Action
	var stats Stats

	firstBackwardIdx := -1
	skipDiscard := false
	for i, op := range ops {
		switch op.Kind {
		case oplist.KWrite:
			// Folded into the following Forward action below.
		case oplist.KForward:
			writeICS := i > 0 && ops[i-1].Kind == oplist.KWrite && ops[i-1].N == op.N0
			writeAdjDeps := i+1 < len(ops) && ops[i+1].Kind == oplist.KBackward && ops[i+1].N0 == op.N1
			storage := WORK
			if writeICS {
				storage = storageKindOf(ops[i-1].Level)
				if storage == RAM {
					stats.WritesRAM++
				} else {
					stats.WritesDisk++
				}
			} else {
				stats.Recomputations += op.N1 - op.N0
			}
			stats.ForwardSteps += op.N1 - op.N0
			actions = append(actions, Forward{
				N0:           op.N0,
				N1:           op.N1,
				WriteICS:     writeICS,
				WriteAdjDeps: writeAdjDeps,
				Storage:      storage,
			})
			if firstBackwardIdx == -1 && op.N1 == maxN {
				actions = append(actions, EndForward{})
			}
		case oplist.KBackward:
			if firstBackwardIdx == -1 {
				firstBackwardIdx = i
			}
			actions = append(actions, Reverse{N1: op.N0, N0: op.N1, ClearAdjDeps: true})
		case oplist.KRead:
			storage := storageKindOf(op.Level)
			if storage == RAM {
				stats.ReadsRAM++
			} else {
				stats.ReadsDisk++
			}
			if i+1 < len(ops) && ops[i+1].Kind == oplist.KDiscard && ops[i+1].N == op.N && ops[i+1].Level == op.Level {
				if storage == RAM {
					stats.DiscardsRAM++
				} else {
					stats.DiscardsDisk++
				}
				actions = append(actions, Move{N: op.N, FromStorage: storage, ToStorage: WORK})
				skipDiscard = true
			} else {
				actions = append(actions, Copy{N: op.N, FromStorage: storage, ToStorage: WORK})
			}
		case oplist.KDiscard:
			if skipDiscard {
				skipDiscard = false
				break
			}
			storage := storageKindOf(op.Level)
			if storage == RAM {
				stats.DiscardsRAM++
			} else {
				stats.DiscardsDisk++
			}
		}
	}
	actions = append(actions, EndReverse{})
	return actions, stats
}

func storageKindOf(level oplist.Level) StorageKind {
	if level == oplist.LevelDisk {
		return DISK
	}
	return RAM
}
