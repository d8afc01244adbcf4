package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoData         = errors.New("analysis: empty series")
	ErrLengthMismatch = errors.New("analysis: times and values differ in length")
)

// Convergence describes how a response approaches its target.
type Convergence struct {
	Start  float64
	Target float64

	// InitialGap is |values[0] - Target|.
	InitialGap float64

	// HalfLife is the first time the gap falls to half of InitialGap,
	// linearly interpolated between samples. NaN if it never does.
	HalfLife float64

	// PeakDeviation is the largest |v - Start| and PeakTime when it occurs.
	PeakDeviation float64
	PeakTime      float64

	// ResidualGap is the gap at the last sample as a fraction of
	// InitialGap. Zero when there was no gap to close.
	ResidualGap float64
}

// Converged reports whether the residual gap is at most tol.
func (c Convergence) Converged(tol float64) bool {
	return c.ResidualGap <= tol
}

// Summarize measures a sampled response against target. times must be
// increasing.
func Summarize(times, values []float64, target float64) (Convergence, error) {
	if len(times) != len(values) {
		return Convergence{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(times), len(values))
	}
	if len(values) == 0 {
		return Convergence{}, ErrNoData
	}

	start := values[0]
	c := Convergence{
		Start:      start,
		Target:     target,
		InitialGap: math.Abs(start - target),
		HalfLife:   math.NaN(),
		PeakTime:   times[0],
	}

	half := c.InitialGap / 2
	prevGap := c.InitialGap
	for i, v := range values {
		if dev := math.Abs(v - start); dev > c.PeakDeviation {
			c.PeakDeviation = dev
			c.PeakTime = times[i]
		}

		gap := math.Abs(v - target)
		if i > 0 && math.IsNaN(c.HalfLife) && gap <= half && prevGap > half {
			frac := (prevGap - half) / (prevGap - gap)
			c.HalfLife = times[i-1] + frac*(times[i]-times[i-1])
		}
		prevGap = gap
	}

	if c.InitialGap > 0 {
		c.ResidualGap = math.Abs(values[len(values)-1]-target) / c.InitialGap
	}
	return c, nil
}

// CobbDouglasHalfLife is ln 2 / ((1-alpha)(g+n+delta)), the half-life of
// the Cobb-Douglas Solow model linearized around its steady state.
func CobbDouglasHalfLife(alpha, g, n, delta float64) float64 {
	return math.Ln2 / ((1 - alpha) * (g + n + delta))
}
