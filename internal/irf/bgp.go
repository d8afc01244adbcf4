package irf

import "math"

// BalancedGrowthPath is the reference line the economy would have followed
// without the shock: the first value of v grown at the pre-shock rate of
// s from the first row onward. In efficiency units it is constant.
func BalancedGrowthPath(t *Table, v Variable, s Scaling) []float64 {
	times, values := t.Series(v)
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	base, t0 := values[0], times[0]
	rate := s.Rate()
	for i, tm := range times {
		out[i] = base * math.Exp(rate*(tm-t0))
	}
	return out
}
