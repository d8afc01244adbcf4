package dynamo

import (
	"maps"
	"slices"
)

// Params holds named model parameters. It is mutated in place when an
// impulse is applied, so callers that shock a model take a Snapshot first.
type Params map[string]float64

func (p Params) Clone() Params {
	return maps.Clone(p)
}

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Merge overwrites the given keys and leaves all others untouched.
func (p Params) Merge(update map[string]float64) {
	maps.Copy(p, update)
}

func (p Params) Equal(other Params) bool {
	return maps.Equal(p, other)
}

// Snapshot is a saved copy of a Params map that can be written back into
// the same map exactly once.
type Snapshot struct {
	live  Params
	saved Params
	done  bool
}

func (p Params) Snapshot() *Snapshot {
	return &Snapshot{live: p, saved: p.Clone()}
}

// Restore resets the live map to the saved contents, removing any keys
// added since the snapshot. Further calls are no-ops.
func (s *Snapshot) Restore() {
	if s.done {
		return
	}
	s.done = true
	clear(s.live)
	maps.Copy(s.live, s.saved)
}

// Saved returns a copy of the parameters as they were when the snapshot was taken.
func (s *Snapshot) Saved() Params {
	return s.saved.Clone()
}
