package integrators

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/solowirf/internal/dynamo"
)

// Default is the integrator used when none is configured.
const Default = "gbs8"

var registry = map[string]func() dynamo.Integrator{
	"euler":  func() dynamo.Integrator { return NewEuler() },
	"rk4":    func() dynamo.Integrator { return NewRK4() },
	"dopri5": func() dynamo.Integrator { return NewRK45() },
	"rk45":   func() dynamo.Integrator { return NewRK45() },
	"gbs8":   func() dynamo.Integrator { return NewGBS8() },
}

// New returns a fresh integrator for name.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
