// Package dynamo provides core simulation primitives for growth dynamics.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical integrator interface
//   - [Params]: named model parameters with [Snapshot] restore
//   - [Config]: solver tolerances and step bounds
//
// # Example
//
//	model := solow.New(solow.CobbDouglas, solow.DefaultParams())
//	snap := model.Params().Snapshot()
//	defer snap.Restore()
//	model.Params().Merge(map[string]float64{"s": 0.3})
//
// # Thread Safety
//
// Params maps are NOT thread-safe. A model whose parameters are being
// shocked must not be shared between goroutines.
package dynamo
