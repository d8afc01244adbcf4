package config

import (
	"slices"

	"github.com/san-kum/solowirf/internal/solow"
)

// Presets are named shock scenarios on top of the default economy.
var Presets = map[string]*Config{
	"savings_boom": {
		Production: "cobb_douglas", Kind: "efficiency_units", Padding: 10, Horizon: 100,
		Impulse: map[string]float64{solow.ParamS: 0.25},
	},
	"productivity_slowdown": {
		Production: "cobb_douglas", Kind: "per_capita", Padding: 10, Horizon: 100,
		Impulse: map[string]float64{solow.ParamG: 0.01},
	},
	"baby_boom": {
		Production: "cobb_douglas", Kind: "levels", Padding: 10, Horizon: 100,
		Impulse: map[string]float64{solow.ParamN: 0.03},
	},
	"depreciation_shock": {
		Production: "cobb_douglas", Kind: "efficiency_units", Padding: 10, Horizon: 100,
		Impulse: map[string]float64{solow.ParamDelta: 0.08},
	},
	"ces_complements": {
		Production: "ces", Kind: "per_capita", Padding: 10, Horizon: 150,
		Impulse: map[string]float64{solow.ParamS: 0.25},
		Params:  ParamsConfig{Sigma: 0.5},
	},
}

// GetPreset returns a full configuration for the named preset, with
// defaults filled in for everything the preset leaves unset. Nil if the
// name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Production = p.Production
	cfg.Kind = p.Kind
	cfg.Padding = p.Padding
	cfg.Horizon = p.Horizon
	if p.Params.Sigma != 0 {
		cfg.Params.Sigma = p.Params.Sigma
	}
	cfg.Impulse = make(map[string]float64, len(p.Impulse))
	for k, v := range p.Impulse {
		cfg.Impulse[k] = v
	}
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
