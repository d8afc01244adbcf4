package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/integrators"
	"github.com/san-kum/solowirf/internal/irf"
	"github.com/san-kum/solowirf/internal/solow"
)

const (
	DefaultPadding   = irf.DefaultPadding
	DefaultHorizon   = irf.DefaultHorizon
	DefaultTolerance = 1e-10
	DefaultMaxDt     = 0.25
	DefaultLogLevel  = "info"
)

type Config struct {
	Production string             `yaml:"production"`
	Params     ParamsConfig       `yaml:"params"`
	Impulse    map[string]float64 `yaml:"impulse"`
	Kind       string             `yaml:"kind"`
	Padding    int                `yaml:"padding"`
	Horizon    int                `yaml:"horizon"`
	Integrator string             `yaml:"integrator"`
	Tolerance  float64            `yaml:"tolerance"`
	MaxDt      float64            `yaml:"max_dt"`
	LogLevel   string             `yaml:"log_level"`
}

type ParamsConfig struct {
	A0    float64 `yaml:"A0"`
	L0    float64 `yaml:"L0"`
	G     float64 `yaml:"g"`
	N     float64 `yaml:"n"`
	S     float64 `yaml:"s"`
	Delta float64 `yaml:"delta"`
	Alpha float64 `yaml:"alpha"`
	Sigma float64 `yaml:"sigma"`
}

func DefaultParams() ParamsConfig {
	p := solow.DefaultParams()
	return ParamsConfig{
		A0:    p[solow.ParamA0],
		L0:    p[solow.ParamL0],
		G:     p[solow.ParamG],
		N:     p[solow.ParamN],
		S:     p[solow.ParamS],
		Delta: p[solow.ParamDelta],
		Alpha: p[solow.ParamAlpha],
		Sigma: p[solow.ParamSigma],
	}
}

func DefaultConfig() *Config {
	return &Config{
		Production: solow.CobbDouglas.String(),
		Params:     DefaultParams(),
		Impulse:    map[string]float64{solow.ParamS: 0.25},
		Kind:       irf.EfficiencyUnits.String(),
		Padding:    DefaultPadding,
		Horizon:    DefaultHorizon,
		Integrator: integrators.Default,
		Tolerance:  DefaultTolerance,
		MaxDt:      DefaultMaxDt,
		LogLevel:   DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	// An impulse in the file replaces the default one instead of merging.
	cfg.Impulse = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Impulse == nil {
		cfg.Impulse = map[string]float64{}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Impulse = make(map[string]float64, len(c.Impulse))
	for k, v := range c.Impulse {
		out.Impulse[k] = v
	}
	return &out
}

// Validate checks everything that can be checked without running a build.
func (c *Config) Validate() error {
	if _, err := solow.ParseProduction(c.Production); err != nil {
		return err
	}
	if _, err := irf.ParseKind(c.Kind); err != nil {
		return err
	}
	if !integrators.Known(c.Integrator) {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownIntegrator, c.Integrator)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", c.Padding)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", c.Horizon)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.MaxDt <= 0 {
		return fmt.Errorf("max_dt must be positive, got %g", c.MaxDt)
	}

	model, err := c.Model()
	if err != nil {
		return err
	}
	return model.Validate()
}

// ModelParams converts the params block into a parameter map.
func (c *Config) ModelParams() dynamo.Params {
	return dynamo.Params{
		solow.ParamA0:    c.Params.A0,
		solow.ParamL0:    c.Params.L0,
		solow.ParamG:     c.Params.G,
		solow.ParamN:     c.Params.N,
		solow.ParamS:     c.Params.S,
		solow.ParamDelta: c.Params.Delta,
		solow.ParamAlpha: c.Params.Alpha,
		solow.ParamSigma: c.Params.Sigma,
	}
}

func (c *Config) SolverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Tolerance = c.Tolerance
	cfg.MaxDt = c.MaxDt
	return cfg
}

// Model builds a fresh Solow model from the configuration.
func (c *Config) Model() (*solow.Model, error) {
	prod, err := solow.ParseProduction(c.Production)
	if err != nil {
		return nil, err
	}
	return solow.New(prod, c.ModelParams()).WithConfig(c.SolverConfig()), nil
}

func (c *Config) ImpulseMap() irf.Impulse {
	if c.Impulse == nil {
		return irf.Impulse{}
	}
	return irf.Impulse(c.Impulse).Clone()
}

// BuilderOptions returns the builder options for padding, horizon and
// integrator.
func (c *Config) BuilderOptions() []irf.Option {
	return []irf.Option{
		irf.WithPadding(c.Padding),
		irf.WithHorizon(c.Horizon),
		irf.WithIntegrator(c.Integrator),
	}
}

// NewBuilder validates c and returns a builder over a fresh model with the
// impulse and kind already set. opts are applied after the configured ones.
func (c *Config) NewBuilder(opts ...irf.Option) (*irf.Builder, *solow.Model, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	model, err := c.Model()
	if err != nil {
		return nil, nil, err
	}

	b := irf.NewBuilder(model, append(c.BuilderOptions(), opts...)...)
	if err := b.SetImpulse(c.ImpulseMap()); err != nil {
		return nil, nil, err
	}
	if err := b.SetKindName(c.Kind); err != nil {
		return nil, nil, err
	}
	return b, model, nil
}
