package irf

import (
	"context"
	"fmt"
	"sync"
)

// Scenario is one impulse/kind pair to build. NewModel, when set, replaces
// the ensemble's model factory for this scenario.
type Scenario struct {
	Name     string
	Impulse  Impulse
	Kind     Kind
	NewModel func() Model
}

// Ensemble builds several scenarios in parallel. Each scenario gets its own
// model from newModel, so no parameter map is shared between goroutines.
type Ensemble struct {
	newModel func() Model
	opts     []Option
}

func NewEnsemble(newModel func() Model, opts ...Option) *Ensemble {
	return &Ensemble{newModel: newModel, opts: opts}
}

// Run returns one table per scenario, in order, or the first error.
func (e *Ensemble) Run(ctx context.Context, scenarios []Scenario) ([]*Table, error) {
	for _, sc := range scenarios {
		if sc.NewModel == nil && e.newModel == nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, &ConfigurationError{Field: "model", Reason: "no model factory"})
		}
	}

	results := make([]*Table, len(scenarios))
	errs := make([]error, len(scenarios))

	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(idx int, sc Scenario) {
			defer wg.Done()

			newModel := e.newModel
			if sc.NewModel != nil {
				newModel = sc.NewModel
			}
			b := NewBuilder(newModel(), e.opts...)
			if err := b.SetImpulse(sc.Impulse); err != nil {
				errs[idx] = fmt.Errorf("scenario %q: %w", sc.Name, err)
				return
			}
			if err := b.SetKind(sc.Kind); err != nil {
				errs[idx] = fmt.Errorf("scenario %q: %w", sc.Name, err)
				return
			}

			table, err := b.Build(ctx)
			if err != nil {
				errs[idx] = fmt.Errorf("scenario %q: %w", sc.Name, err)
				return
			}
			results[idx] = table
		}(i, sc)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
