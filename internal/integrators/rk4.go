package integrators

import "github.com/san-kum/solowirf/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method, written out from its
// Butcher tableau.
type RK4 struct {
	a [][]float64
	b []float64
	c []float64
}

func NewRK4() *RK4 {
	return &RK4{
		a: [][]float64{
			{},
			{0.5},
			{0, 0.5},
			{0, 0, 1},
		},
		b: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
		c: []float64{0, 0.5, 0.5, 1},
	}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k := make([]dynamo.State, len(r.b))
	for s := range k {
		stage := x.Clone()
		for j, a := range r.a[s] {
			if a != 0 {
				axpy(stage, dt*a, k[j])
			}
		}
		k[s] = sys.Derive(stage, t+r.c[s]*dt)
	}

	next := x.Clone()
	for s, b := range r.b {
		axpy(next, dt*b, k[s])
	}
	return next
}

// axpy adds h*f to x in place.
func axpy(x dynamo.State, h float64, f dynamo.State) {
	for i := range x {
		x[i] += h * f[i]
	}
}
