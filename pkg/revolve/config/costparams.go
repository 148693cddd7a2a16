package config

import (
	"fmt"
)

// CostParamsData is the structural shape of a cost-parameter bundle as
// loaded from YAML or JSON, mirroring the revolve.CostParams fields.
// Defined separately from revolve.CostParams so this package does not
// depend on the revolve package; callers convert with ToCostParams.
type CostParamsData struct {
	UF float64
	UB float64
	WD float64
	RD float64
	WM float64
	RM float64
}

// ToCostParams extracts a CostParamsData from a named bundle inside a
// Config loaded from a file such as:
//
//	h-revolve-default:
//	  uf: 1
//	  ub: 2
//	  wd: 0.1
//	  rd: 0.1
//
// Missing uf and ub default to 1, other missing fields to zero; missing
// bundles return an error.
func (c Config) ToCostParams(name string) (CostParamsData, error) {
	raw, ok := c.data[name]
	if !ok {
		return CostParamsData{}, fmt.Errorf("cost-parameter bundle %q not found", name)
	}
	bundle, ok := raw.(map[string]any)
	if !ok {
		return CostParamsData{}, fmt.Errorf("cost-parameter bundle %q is not a mapping", name)
	}
	sub := New(bundle)
	return CostParamsData{
		UF: sub.Float("uf", 1),
		UB: sub.Float("ub", 1),
		WD: sub.Float("wd", 0),
		RD: sub.Float("rd", 0),
		WM: sub.Float("wm", 0),
		RM: sub.Float("rm", 0),
	}, nil
}

// LoadCostParams loads a named cost-parameter bundle from a YAML or JSON
// file (format auto-detected by extension, via FromFile).
func LoadCostParams(path, name string) (CostParamsData, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return CostParamsData{}, err
	}
	return cfg.ToCostParams(name)
}

// LoadCostParamsYAML loads a named cost-parameter bundle from raw YAML
// bytes.
func LoadCostParamsYAML(data []byte, name string) (CostParamsData, error) {
	cfg, err := FromYAML(data)
	if err != nil {
		return CostParamsData{}, err
	}
	return cfg.ToCostParams(name)
}
