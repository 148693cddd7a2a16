package golden

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/revolve/pkg/revolve"
)

// wireAction is the flattened, tagged-union JSON shape for
// revolve.Action: the interface has no exported fields of its own, so
// every variant's fields are folded into one struct with a Kind
// discriminant, omitting whichever fields its variant doesn't use.
type wireAction struct {
	Kind string `json:"kind"`

	N0 int `json:"n0,omitempty"`
	N1 int `json:"n1,omitempty"`

	WriteICS     bool `json:"write_ics,omitempty"`
	WriteAdjDeps bool `json:"write_adj_deps,omitempty"`
	ClearAdjDeps bool `json:"clear_adj_deps,omitempty"`

	Storage     string `json:"storage,omitempty"`
	FromStorage string `json:"from_storage,omitempty"`
	ToStorage   string `json:"to_storage,omitempty"`
}

func storageName(s revolve.StorageKind) string {
	return s.String()
}

func parseStorage(name string) (revolve.StorageKind, error) {
	switch name {
	case "", "NONE":
		return revolve.NONE, nil
	case "RAM":
		return revolve.RAM, nil
	case "DISK":
		return revolve.DISK, nil
	case "WORK":
		return revolve.WORK, nil
	default:
		return revolve.NONE, fmt.Errorf("golden: unknown storage kind %q", name)
	}
}

// encodeActions converts a schedule's action stream into its JSON wire
// form.
func encodeActions(actions []revolve.Action) ([]byte, error) {
	wire := make([]wireAction, len(actions))
	for i, a := range actions {
		switch v := a.(type) {
		case revolve.Forward:
			n1 := v.N1
			if n1 == revolve.IntMax {
				n1 = -1
			}
			wire[i] = wireAction{
				Kind: "forward", N0: v.N0, N1: n1,
				WriteICS: v.WriteICS, WriteAdjDeps: v.WriteAdjDeps,
				Storage: storageName(v.Storage),
			}
		case revolve.Reverse:
			wire[i] = wireAction{
				Kind: "reverse", N0: v.N0, N1: v.N1, ClearAdjDeps: v.ClearAdjDeps,
			}
		case revolve.Copy:
			wire[i] = wireAction{
				Kind: "copy", N0: v.N,
				FromStorage: storageName(v.FromStorage), ToStorage: storageName(v.ToStorage),
			}
		case revolve.Move:
			wire[i] = wireAction{
				Kind: "move", N0: v.N,
				FromStorage: storageName(v.FromStorage), ToStorage: storageName(v.ToStorage),
			}
		case revolve.EndForward:
			wire[i] = wireAction{Kind: "end_forward"}
		case revolve.EndReverse:
			wire[i] = wireAction{Kind: "end_reverse"}
		default:
			return nil, fmt.Errorf("golden: unsupported action type %T", a)
		}
	}
	return json.Marshal(wire)
}

// decodeActions parses the JSON wire form back into a schedule's action
// stream.
func decodeActions(data []byte) ([]revolve.Action, error) {
	var wire []wireAction
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("golden: decode action stream: %w", err)
	}
	actions := make([]revolve.Action, len(wire))
	for i, w := range wire {
		switch w.Kind {
		case "forward":
			n1 := w.N1
			if n1 == -1 {
				n1 = revolve.IntMax
			}
			storage, err := parseStorage(w.Storage)
			if err != nil {
				return nil, err
			}
			actions[i] = revolve.Forward{
				N0: w.N0, N1: n1, WriteICS: w.WriteICS, WriteAdjDeps: w.WriteAdjDeps, Storage: storage,
			}
		case "reverse":
			actions[i] = revolve.Reverse{N1: w.N1, N0: w.N0, ClearAdjDeps: w.ClearAdjDeps}
		case "copy":
			from, err := parseStorage(w.FromStorage)
			if err != nil {
				return nil, err
			}
			to, err := parseStorage(w.ToStorage)
			if err != nil {
				return nil, err
			}
			actions[i] = revolve.Copy{N: w.N0, FromStorage: from, ToStorage: to}
		case "move":
			from, err := parseStorage(w.FromStorage)
			if err != nil {
				return nil, err
			}
			to, err := parseStorage(w.ToStorage)
			if err != nil {
				return nil, err
			}
			actions[i] = revolve.Move{N: w.N0, FromStorage: from, ToStorage: to}
		case "end_forward":
			actions[i] = revolve.EndForward{}
		case "end_reverse":
			actions[i] = revolve.EndReverse{}
		default:
			return nil, fmt.Errorf("golden: unknown action kind %q", w.Kind)
		}
	}
	return actions, nil
}
