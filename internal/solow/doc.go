// Package solow provides the continuous-time Solow growth model.
//
// The state is capital per effective worker k, which evolves as
//
//	dk/dt = s f(k) - (g + n + delta) k
//
// with f either Cobb-Douglas k^alpha or CES
// [alpha k^rho + (1-alpha)]^(1/rho), rho = (sigma-1)/sigma. All values are
// in efficiency units; A0, L0, g and n are only used by callers that
// rescale into per-capita or levels terms.
//
// A [Model] owns a mutable [dynamo.Params] map. Shocking the model means
// writing into that map, so a Model must not be shared between goroutines.
package solow
