package integrators

import (
	"math"

	"github.com/san-kum/solowirf/internal/dynamo"
)

// Extrapolation is a Gragg-Bulirsch-Stoer integrator: modified midpoint
// sweeps with an increasing number of substeps, combined by polynomial
// extrapolation in h^2. With four sweeps the result is 8th order.
type Extrapolation struct {
	seq      []int
	safety   float64
	minScale float64
	maxScale float64
}

func NewGBS8() *Extrapolation {
	return &Extrapolation{
		seq:      []int{2, 4, 6, 8},
		safety:   0.9,
		minScale: 0.2,
		maxScale: 4.0,
	}
}

// Order is the order of the extrapolated solution.
func (e *Extrapolation) Order() int {
	return 2 * len(e.seq)
}

func (e *Extrapolation) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	tab := e.tableau(sys, x, t, dt)
	k := len(e.seq) - 1
	return tab[k][k]
}

func (e *Extrapolation) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	tab := e.tableau(sys, x, t, dt)
	k := len(e.seq) - 1
	best, lower := tab[k][k], tab[k][k-1]

	errMax := 0.0
	for i := range x {
		scale := math.Max(math.Abs(x[i]), math.Abs(best[i])) + 1e-10
		errMax = math.Max(errMax, math.Abs(best[i]-lower[i])/scale)
	}

	errRatio := errMax / tol
	exponent := -1.0 / float64(e.Order()-1)

	if errRatio > 1 {
		scale := math.Max(e.minScale, e.safety*math.Pow(errRatio, exponent))
		return x, dt * scale, ErrStepRejected
	}

	if errRatio == 0 {
		return best, dt * e.maxScale, nil
	}
	scale := math.Min(e.maxScale, e.safety*math.Pow(errRatio, exponent))
	return best, dt * scale, nil
}

// tableau builds the Neville extrapolation triangle; row j holds the
// estimates from the first j+1 sweeps.
func (e *Extrapolation) tableau(sys dynamo.System, x dynamo.State, t, dt float64) [][]dynamo.State {
	n := len(x)
	tab := make([][]dynamo.State, len(e.seq))

	for j, steps := range e.seq {
		tab[j] = make([]dynamo.State, j+1)
		tab[j][0] = modifiedMidpoint(sys, x, t, dt, steps)

		for k := 1; k <= j; k++ {
			ratio := float64(steps) / float64(e.seq[j-k])
			denom := ratio*ratio - 1

			next := make(dynamo.State, n)
			for i := 0; i < n; i++ {
				next[i] = tab[j][k-1][i] + (tab[j][k-1][i]-tab[j-1][k-1][i])/denom
			}
			tab[j][k] = next
		}
	}

	return tab
}

func modifiedMidpoint(sys dynamo.System, x dynamo.State, t, dt float64, steps int) dynamo.State {
	n := len(x)
	h := dt / float64(steps)

	prev := x.Clone()
	curr := x.Clone()
	axpy(curr, h, sys.Derive(prev, t))

	for m := 1; m < steps; m++ {
		next := prev.Clone()
		axpy(next, 2*h, sys.Derive(curr, t+float64(m)*h))
		prev, curr = curr, next
	}

	f := sys.Derive(curr, t+dt)
	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = 0.5 * (curr[i] + prev[i] + h*f[i])
	}
	return result
}
