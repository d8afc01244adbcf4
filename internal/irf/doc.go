// Package irf builds impulse response tables for growth models.
//
// A [Builder] shocks a [Model] with an [Impulse], integrates the model
// forward from its pre-shock steady state, and stitches a pre-shock
// padding block onto the response so the result is one continuous,
// plot-ready [Table]:
//
//	b := irf.NewBuilder(model, irf.WithHorizon(100))
//	if err := b.SetImpulse(irf.Impulse{"s": 0.3}); err != nil { ... }
//	if err := b.SetKind(irf.Levels); err != nil { ... }
//	table, err := b.Build(ctx)
//
// Values are reported in one of three unit conventions ([Kind]): the
// model's own efficiency units, per-capita terms (scaled by technology
// A0 e^{g t}) or levels (scaled by A0 L0 e^{(g+n) t}).
//
// # Parameter mutation
//
// Build writes the impulse into the model's parameter map and always
// restores the original values before it returns, on success or failure.
// While a build is running the model is observably shocked, so a model
// must not be shared by concurrent builds; give each goroutine its own
// model (see [Ensemble]) or serialize access.
package irf
