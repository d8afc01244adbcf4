package irf

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/san-kum/solowirf/internal/dynamo"
)

// Impulse maps parameter names to their post-shock values.
type Impulse map[string]float64

func (i Impulse) Clone() Impulse {
	return maps.Clone(i)
}

func (i Impulse) Keys() []string {
	return slices.Sorted(maps.Keys(i))
}

// validate checks that every key names an existing parameter. A nil map
// is rejected; an empty one is a valid "no shock" impulse.
func (i Impulse) validate(params dynamo.Params) error {
	if i == nil {
		return &ConfigurationError{Field: "impulse", Reason: "must be a parameter mapping, got nil"}
	}

	var unknown []string
	for _, name := range i.Keys() {
		if !params.Has(name) {
			unknown = append(unknown, name)
			continue
		}
		if v := i[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigurationError{Field: "impulse", Reason: fmt.Sprintf("value for %s is not finite", name)}
		}
	}

	if len(unknown) > 0 {
		return &ConfigurationError{
			Field:  "impulse",
			Reason: fmt.Sprintf("unknown parameters %v (model has %v)", unknown, params.Names()),
		}
	}
	return nil
}
