package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/solowirf/internal/irf"
)

// ScenarioFile is a named list of scenarios compared side by side.
type ScenarioFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Scenarios   []ScenarioSpec `yaml:"scenarios"`
}

// ScenarioSpec is one entry of a scenario file. A preset supplies the
// production function, kind and impulse; the other fields override it.
type ScenarioSpec struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset,omitempty"`
	Production string             `yaml:"production,omitempty"`
	Kind       string             `yaml:"kind,omitempty"`
	Impulse    map[string]float64 `yaml:"impulse,omitempty"`
}

func LoadScenarios(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f ScenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: no scenarios", path)
	}
	return &f, nil
}

// Resolve turns every entry into an irf.Scenario on the parameters of base.
func (f *ScenarioFile) Resolve(base *Config) ([]irf.Scenario, error) {
	out := make([]irf.Scenario, 0, len(f.Scenarios))
	for i, spec := range f.Scenarios {
		sc, err := spec.Resolve(base)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// Resolve applies s on top of base. Each call of the returned
// scenario's NewModel gives an independent model.
func (s ScenarioSpec) Resolve(base *Config) (irf.Scenario, error) {
	cfg := base.Clone()
	name := s.Name

	if s.Preset != "" {
		p := GetPreset(s.Preset)
		if p == nil {
			return irf.Scenario{}, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, ListPresets())
		}
		cfg.Production, cfg.Kind, cfg.Impulse = p.Production, p.Kind, p.ImpulseMap()
		if sigma := Presets[s.Preset].Params.Sigma; sigma != 0 {
			cfg.Params.Sigma = sigma
		}
		if name == "" {
			name = s.Preset
		}
	}
	if s.Production != "" {
		cfg.Production = s.Production
	}
	if s.Kind != "" {
		cfg.Kind = s.Kind
	}
	if s.Impulse != nil {
		cfg.Impulse = s.Impulse
	}

	if err := cfg.Validate(); err != nil {
		return irf.Scenario{}, err
	}
	kind, err := irf.ParseKind(cfg.Kind)
	if err != nil {
		return irf.Scenario{}, err
	}
	model, err := cfg.Model()
	if err != nil {
		return irf.Scenario{}, err
	}
	if name == "" {
		name = fmt.Sprintf("%s/%s", cfg.Production, cfg.Kind)
	}

	return irf.Scenario{
		Name:     name,
		Impulse:  cfg.ImpulseMap(),
		Kind:     kind,
		NewModel: func() irf.Model { return model.Clone() },
	}, nil
}

// PresetScenario is the scenario of a named preset on the parameters of base.
func PresetScenario(base *Config, name string) (irf.Scenario, error) {
	return ScenarioSpec{Preset: name}.Resolve(base)
}
