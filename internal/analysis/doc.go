// Package analysis summarizes impulse responses and the dynamics behind them.
//
//   - [Summarize]: half-life, peak deviation and residual gap of a response
//   - [CobbDouglasHalfLife]: the linearized half-life around the steady state
//   - [GeneratePhaseDiagram]: k against dk/dt for a one-dimensional system
//
// # Convergence
//
// A response that has closed half of its initial gap to the new steady
// state by t reports HalfLife = t:
//
//	sum, err := analysis.Summarize(times, capital, kStar)
//	if err == nil && sum.Converged(1e-3) {
//	    // within 0.1% of the initial gap at the horizon
//	}
package analysis
