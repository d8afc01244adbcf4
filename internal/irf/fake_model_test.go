package irf_test

import (
	"context"
	"math"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/ivp"
)

// relaxModel relaxes k toward 10*savings_rate at rate 0.1, so
// k(t) = k* + (k0 - k*) e^{-0.1 t}, with output sqrt(k).
type relaxModel struct {
	params   dynamo.Params
	solveErr error
	seen     []dynamo.Params
}

func newRelaxModel() *relaxModel {
	return &relaxModel{params: dynamo.Params{
		"A0":           1,
		"L0":           1,
		"g":            0.02,
		"n":            0.01,
		"savings_rate": 0.2,
	}}
}

func (m *relaxModel) Params() dynamo.Params { return m.params }

func (m *relaxModel) SteadyState() (float64, error) {
	return 10 * m.params["savings_rate"], nil
}

func (m *relaxModel) IntensiveOutput(k float64) float64 { return math.Sqrt(k) }

func (m *relaxModel) Consumption(k float64) float64 {
	return (1 - m.params["savings_rate"]) * math.Sqrt(k)
}

func (m *relaxModel) Investment(k float64) float64 {
	return m.params["savings_rate"] * math.Sqrt(k)
}

func (m *relaxModel) StateDim() int { return 1 }

func (m *relaxModel) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{0.1 * (10*m.params["savings_rate"] - x[0])}
}

func (m *relaxModel) Solve(ctx context.Context, t0 float64, y0 dynamo.State, h, T float64, integrator string) ([]ivp.Point, error) {
	m.seen = append(m.seen, m.params.Clone())
	if m.solveErr != nil {
		return nil, m.solveErr
	}
	return ivp.New(m, dynamo.DefaultConfig()).Solve(ctx, t0, y0, h, T, integrator)
}

// exactCapital is the closed-form response after savings jumps to s1.
func exactCapital(k0, s1, t float64) float64 {
	kStar := 10 * s1
	return kStar + (k0-kStar)*math.Exp(-0.1*t)
}
