package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/solowirf/internal/irf"
)

// CapitalConvergence builds the efficiency-unit capital response of model
// to imp and summarizes it against the post-shock steady state. Padding
// is dropped so the series starts at the shock. The model's parameters
// are unchanged on return.
func CapitalConvergence(ctx context.Context, model irf.Model, imp irf.Impulse, opts ...irf.Option) (Convergence, error) {
	b := irf.NewBuilder(model, append(opts, irf.WithPadding(0))...)
	if err := b.SetImpulse(imp); err != nil {
		return Convergence{}, err
	}
	if err := b.SetKind(irf.EfficiencyUnits); err != nil {
		return Convergence{}, err
	}

	table, err := b.Build(ctx)
	if err != nil {
		return Convergence{}, err
	}

	target, err := shockedSteadyState(model, imp)
	if err != nil {
		return Convergence{}, fmt.Errorf("post-shock steady state: %w", err)
	}

	times, capital := table.Series(irf.Capital)
	return Summarize(times, capital, target)
}

func shockedSteadyState(model irf.Model, imp irf.Impulse) (float64, error) {
	params := model.Params()
	snap := params.Snapshot()
	defer snap.Restore()

	params.Merge(imp)
	return model.SteadyState()
}
