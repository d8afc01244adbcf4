// Package ivp solves initial value problems on a fixed reporting grid.
package ivp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/integrators"
)

// maxSubsteps bounds the adaptive steps taken inside one reporting interval.
const maxSubsteps = 100000

// Point is one reported row of a solution.
type Point struct {
	T float64
	Y dynamo.State
}

type Solver struct {
	sys dynamo.System
	cfg dynamo.Config
}

func New(sys dynamo.System, cfg dynamo.Config) *Solver {
	return &Solver{sys: sys, cfg: cfg}
}

// Solve integrates from (t0, y0) and reports the state at t0, t0+h, ...
// until T is reached, giving ceil((T-t0)/h)+1 points. Adaptive
// integrators take as many internal steps as their tolerance requires;
// fixed-step ones subdivide each interval so no step exceeds MaxDt.
func (s *Solver) Solve(ctx context.Context, t0 float64, y0 dynamo.State, h, T float64, integrator string) ([]Point, error) {
	if err := s.validate(t0, y0, h, T); err != nil {
		return nil, err
	}

	integ, err := integrators.New(integrator)
	if err != nil {
		return nil, err
	}

	steps := int(math.Ceil((T-t0)/h - 1e-9))
	if steps < 0 {
		steps = 0
	}

	points := make([]Point, 0, steps+1)
	x := y0.Clone()
	points = append(points, Point{T: t0, Y: x.Clone()})

	dtHint := math.Min(h, s.cfg.MaxDt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := t0 + float64(i)*h
		var next dynamo.State
		if adaptive, ok := integ.(dynamo.AdaptiveIntegrator); ok {
			next, dtHint, err = s.advanceAdaptive(adaptive, x, t, h, dtHint)
			if err != nil {
				return nil, &dynamo.SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			}
		} else {
			next = s.advanceFixed(integ, x, t, h)
		}

		if s.cfg.ValidateState && !next.IsValid() {
			return nil, &dynamo.SimulationError{Step: i + 1, Time: t + h, State: next, Wrapped: dynamo.ErrInvalidState}
		}

		x = next
		points = append(points, Point{T: t0 + float64(i+1)*h, Y: x.Clone()})
	}

	return points, nil
}

func (s *Solver) validate(t0 float64, y0 dynamo.State, h, T float64) error {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("step size must be positive, got %f", h)
	}
	if T < t0 || math.IsNaN(T) || math.IsInf(T, 0) {
		return fmt.Errorf("horizon %f must not precede t0 %f", T, t0)
	}
	if len(y0) != s.sys.StateDim() {
		return fmt.Errorf("%w: got %d, want %d", dynamo.ErrDimensionMismatch, len(y0), s.sys.StateDim())
	}
	if !y0.IsValid() {
		return &dynamo.SimulationError{Time: t0, State: y0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}
	if s.cfg.MaxDt <= 0 {
		return fmt.Errorf("max dt must be positive, got %f", s.cfg.MaxDt)
	}
	return nil
}

func (s *Solver) advanceFixed(integ dynamo.Integrator, x dynamo.State, t, h float64) dynamo.State {
	n := int(math.Ceil(h/s.cfg.MaxDt - 1e-9))
	if n < 1 {
		n = 1
	}
	dt := h / float64(n)
	for j := 0; j < n; j++ {
		x = integ.Step(s.sys, x, t+float64(j)*dt, dt)
	}
	return x
}

// advanceAdaptive moves x from t to exactly t+h and returns the step size
// to try first on the next interval.
func (s *Solver) advanceAdaptive(integ dynamo.AdaptiveIntegrator, x dynamo.State, t, h, dt float64) (dynamo.State, float64, error) {
	end := t + h
	tcur := t
	for n := 0; n < maxSubsteps; n++ {
		remaining := end - tcur
		if remaining <= 1e-12*math.Max(1, math.Abs(end)) {
			return x, dt, nil
		}

		last := dt >= remaining
		if last {
			dt = remaining
		}

		next, dtNext, err := integ.StepAdaptive(s.sys, x, tcur, dt, s.cfg.Tolerance)
		if errors.Is(err, integrators.ErrStepRejected) {
			if dtNext < s.cfg.MinDt {
				return x, dt, dynamo.ErrStepTooSmall
			}
			dt = dtNext
			continue
		}
		if err != nil {
			return x, dt, err
		}
		if !next.IsValid() {
			return x, dt, dynamo.ErrInvalidState
		}

		x = next
		if last {
			tcur = end
		} else {
			tcur += dt
		}
		dt = math.Min(dtNext, h)
		if dt < s.cfg.MinDt {
			return x, dt, dynamo.ErrStepTooSmall
		}
	}
	return x, dt, dynamo.ErrStepTooSmall
}
