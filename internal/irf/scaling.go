package irf

import (
	"fmt"
	"math"

	"github.com/san-kum/solowirf/internal/dynamo"
)

// Scaling converts efficiency-unit values into per-capita or levels terms.
// The factor at time t is Level * exp(Rate * t).
type Scaling struct {
	Kind Kind
	A0   float64
	L0   float64
	G    float64
	N    float64
}

// NewScaling reads A0, L0, g and n from params. Efficiency units need none
// of them.
func NewScaling(kind Kind, params dynamo.Params) (Scaling, error) {
	if !kind.Valid() {
		return Scaling{}, &ConfigurationError{Field: "kind", Reason: kind.String()}
	}
	s := Scaling{Kind: kind}
	if kind == EfficiencyUnits {
		return s, nil
	}

	for _, name := range []string{"A0", "L0", "g", "n"} {
		v, ok := params[name]
		if !ok {
			return Scaling{}, &ConfigurationError{Field: "kind", Reason: fmt.Sprintf("%s scaling needs parameter %s", kind, name)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Scaling{}, &ConfigurationError{Field: "kind", Reason: fmt.Sprintf("parameter %s is not finite", name)}
		}
	}

	s.A0, s.L0 = params["A0"], params["L0"]
	s.G, s.N = params["g"], params["n"]
	return s, nil
}

// Rate is the exponential growth rate of the factor.
func (s Scaling) Rate() float64 {
	switch s.Kind {
	case PerCapita:
		return s.G
	case Levels:
		return s.G + s.N
	default:
		return 0
	}
}

// Level is the factor at t = 0.
func (s Scaling) Level() float64 {
	switch s.Kind {
	case PerCapita:
		return s.A0
	case Levels:
		return s.A0 * s.L0
	default:
		return 1
	}
}

func (s Scaling) Factor(t float64) float64 {
	if s.Kind == EfficiencyUnits {
		return 1
	}
	return s.Level() * math.Exp(s.Rate()*t)
}

// Factors evaluates the factor at each time.
func (s Scaling) Factors(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = s.Factor(t)
	}
	return out
}

// ResponseFactors grows anchor at this scaling's rate over the response
// window, anchor * exp(Rate * t). Passing the last padding factor as the
// anchor makes the response continue the padding without a jump.
func (s Scaling) ResponseFactors(anchor float64, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		if s.Kind == EfficiencyUnits {
			out[i] = 1
			continue
		}
		out[i] = anchor * math.Exp(s.Rate()*t)
	}
	return out
}

// PaddingTimes returns -n, ..., -1.
func PaddingTimes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i - n)
	}
	return out
}

// ResponseTimes returns 0, 1, ..., horizon.
func ResponseTimes(horizon int) []float64 {
	out := make([]float64, horizon+1)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
