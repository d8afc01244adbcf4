package solow

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/ivp"
)

// Parameter names.
const (
	ParamA0    = "A0"
	ParamL0    = "L0"
	ParamG     = "g"
	ParamN     = "n"
	ParamS     = "s"
	ParamDelta = "delta"
	ParamAlpha = "alpha"
	ParamSigma = "sigma"
)

func DefaultParams() dynamo.Params {
	return dynamo.Params{
		ParamA0:    1.0,
		ParamL0:    1.0,
		ParamG:     0.02,
		ParamN:     0.02,
		ParamS:     0.15,
		ParamDelta: 0.04,
		ParamAlpha: 0.33,
		ParamSigma: 1.0,
	}
}

type Model struct {
	production Production
	params     dynamo.Params
	cfg        dynamo.Config
}

// New copies params, so later changes to the caller's map are not seen.
func New(production Production, params dynamo.Params) *Model {
	return &Model{
		production: production,
		params:     params.Clone(),
		cfg:        dynamo.DefaultConfig(),
	}
}

// WithConfig sets the solver tolerances used by Solve.
func (m *Model) WithConfig(cfg dynamo.Config) *Model {
	m.cfg = cfg
	return m
}

// Params returns the live parameter map.
func (m *Model) Params() dynamo.Params { return m.params }

func (m *Model) Production() Production { return m.production }

func (m *Model) Clone() *Model {
	return &Model{production: m.production, params: m.params.Clone(), cfg: m.cfg}
}

func (m *Model) StateDim() int { return 1 }

func (m *Model) Validate() error {
	required := []string{ParamA0, ParamL0, ParamG, ParamN, ParamS, ParamDelta, ParamAlpha}
	if m.production == CES {
		required = append(required, ParamSigma)
	}
	for _, name := range required {
		v, ok := m.params[name]
		if !ok {
			return fmt.Errorf("%w: missing parameter %s", dynamo.ErrParameterBounds, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, name)
		}
	}

	p := m.params
	switch {
	case p[ParamA0] <= 0:
		return fmt.Errorf("%w: A0 must be positive, got %g", dynamo.ErrParameterBounds, p[ParamA0])
	case p[ParamL0] <= 0:
		return fmt.Errorf("%w: L0 must be positive, got %g", dynamo.ErrParameterBounds, p[ParamL0])
	case p[ParamS] <= 0 || p[ParamS] >= 1:
		return fmt.Errorf("%w: s must be in (0, 1), got %g", dynamo.ErrParameterBounds, p[ParamS])
	case p[ParamAlpha] <= 0 || p[ParamAlpha] >= 1:
		return fmt.Errorf("%w: alpha must be in (0, 1), got %g", dynamo.ErrParameterBounds, p[ParamAlpha])
	case p[ParamDelta] < 0:
		return fmt.Errorf("%w: delta must be non-negative, got %g", dynamo.ErrParameterBounds, p[ParamDelta])
	case m.EffectiveDepreciation() <= 0:
		return fmt.Errorf("%w: g + n + delta must be positive, got %g", dynamo.ErrParameterBounds, m.EffectiveDepreciation())
	case m.production == CES && p[ParamSigma] <= 0:
		return fmt.Errorf("%w: sigma must be positive, got %g", dynamo.ErrParameterBounds, p[ParamSigma])
	}
	return nil
}

// EffectiveDepreciation is g + n + delta, the rate at which capital per
// effective worker is diluted.
func (m *Model) EffectiveDepreciation() float64 {
	return m.params[ParamG] + m.params[ParamN] + m.params[ParamDelta]
}

func (m *Model) IntensiveOutput(k float64) float64 {
	alpha := m.params[ParamAlpha]
	if m.production == CES {
		return ces(k, alpha, m.params[ParamSigma])
	}
	return cobbDouglas(k, alpha)
}

func (m *Model) Consumption(k float64) float64 {
	return (1 - m.params[ParamS]) * m.IntensiveOutput(k)
}

// Investment is actual (gross) investment s f(k).
func (m *Model) Investment(k float64) float64 {
	return m.params[ParamS] * m.IntensiveOutput(k)
}

// SteadyState solves s f(k) = (g + n + delta) k in closed form.
func (m *Model) SteadyState() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	s, alpha := m.params[ParamS], m.params[ParamAlpha]
	ratio := m.EffectiveDepreciation() / s

	r := 0.0
	if m.production == CES {
		r = rho(m.params[ParamSigma])
	}

	var k float64
	if r == 0 {
		k = math.Pow(1/ratio, 1/(1-alpha))
	} else {
		base := (1 - alpha) / (math.Pow(ratio, r) - alpha)
		if base <= 0 {
			return 0, fmt.Errorf("%w: no interior steady state for sigma=%g", dynamo.ErrParameterBounds, m.params[ParamSigma])
		}
		k = math.Pow(base, 1/r)
	}

	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return 0, fmt.Errorf("%w: steady state %g", dynamo.ErrInvalidState, k)
	}
	return k, nil
}

func (m *Model) Derive(x dynamo.State, t float64) dynamo.State {
	k := x[0]
	return dynamo.State{m.params[ParamS]*m.IntensiveOutput(k) - m.EffectiveDepreciation()*k}
}

// Solve integrates the law of motion under the current parameters.
func (m *Model) Solve(ctx context.Context, t0 float64, y0 dynamo.State, h, T float64, integrator string) ([]ivp.Point, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return ivp.New(m, m.cfg).Solve(ctx, t0, y0, h, T, integrator)
}
