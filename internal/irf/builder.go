package irf

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/integrators"
	"github.com/san-kum/solowirf/internal/ivp"
	"github.com/san-kum/solowirf/internal/logging"
)

const (
	DefaultPadding = 10
	DefaultHorizon = 100

	// stepSize is the reporting interval of the response block.
	stepSize = 1.0
)

// Model is the growth model a Builder shocks. Params must return the live
// map that the evaluation functions and Solve read from.
type Model interface {
	Params() dynamo.Params
	SteadyState() (float64, error)
	IntensiveOutput(k float64) float64
	Consumption(k float64) float64
	Investment(k float64) float64
	Solve(ctx context.Context, t0 float64, y0 dynamo.State, h, T float64, integrator string) ([]ivp.Point, error)
}

type Option func(*Builder)

// WithPadding sets the number of pre-shock rows N.
func WithPadding(n int) Option {
	return func(b *Builder) { b.padding = n }
}

// WithHorizon sets the last response time T.
func WithHorizon(t int) Option {
	return func(b *Builder) { b.horizon = t }
}

func WithIntegrator(name string) Option {
	return func(b *Builder) { b.integrator = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// Builder produces impulse response tables. Its own methods are safe for
// concurrent use, but the model it wraps is not; see the package docs.
type Builder struct {
	mu         sync.Mutex
	model      Model
	impulse    Impulse
	kind       Kind
	padding    int
	horizon    int
	integrator string
	logger     *slog.Logger
}

func NewBuilder(model Model, opts ...Option) *Builder {
	b := &Builder{
		model:      model,
		kind:       EfficiencyUnits,
		padding:    DefaultPadding,
		horizon:    DefaultHorizon,
		integrator: integrators.Default,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetImpulse validates imp against the model's current parameter names
// and stores a copy.
func (b *Builder) SetImpulse(imp Impulse) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := imp.validate(b.model.Params()); err != nil {
		return err
	}
	b.impulse = imp.Clone()
	return nil
}

func (b *Builder) SetKind(k Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !k.Valid() {
		return &ConfigurationError{Field: "kind", Reason: fmt.Sprintf("%s is not one of %v", k, kindNames)}
	}
	b.kind = k
	return nil
}

// SetKindName parses and stores one of "levels", "per_capita" or
// "efficiency_units".
func (b *Builder) SetKindName(name string) error {
	k, err := ParseKind(name)
	if err != nil {
		return err
	}
	return b.SetKind(k)
}

func (b *Builder) SetPadding(n int) error {
	if n < 0 {
		return &ConfigurationError{Field: "padding", Reason: fmt.Sprintf("must be non-negative, got %d", n)}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.padding = n
	return nil
}

func (b *Builder) SetHorizon(t int) error {
	if t < 0 {
		return &ConfigurationError{Field: "horizon", Reason: fmt.Sprintf("must be non-negative, got %d", t)}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.horizon = t
	return nil
}

func (b *Builder) SetIntegrator(name string) error {
	if !integrators.Known(name) {
		return &ConfigurationError{Field: "integrator", Reason: fmt.Sprintf("%q is not one of %v", name, integrators.Names())}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.integrator = name
	return nil
}

func (b *Builder) Impulse() Impulse {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.impulse.Clone()
}

func (b *Builder) Kind() Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kind
}

func (b *Builder) Padding() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.padding
}

func (b *Builder) Horizon() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.horizon
}

// Scaling returns the pre-shock scaling for the current kind.
func (b *Builder) Scaling() (Scaling, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return NewScaling(b.kind, b.model.Params())
}

// Build computes a fresh table. The model's parameters are shocked with
// the impulse for the duration of the call and restored before it
// returns, whatever the outcome.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pre, err := b.validate()
	if err != nil {
		return nil, err
	}

	params := b.model.Params()
	snap := params.Snapshot()
	defer func() {
		snap.Restore()
		b.logger.Debug("restored parameters", "params", len(params))
	}()

	k0, err := b.model.SteadyState()
	if err != nil {
		return nil, &IntegrationError{Err: fmt.Errorf("pre-shock steady state: %w", err)}
	}

	data := make([]float64, 0, (b.padding+b.horizon+1)*numColumns)

	paddingTimes := PaddingTimes(b.padding)
	paddingFactors := pre.Factors(paddingTimes)
	quad, err := b.evaluate(k0)
	if err != nil {
		return nil, err
	}
	for i, t := range paddingTimes {
		data = appendRow(data, t, paddingFactors[i], quad)
	}
	b.logger.Debug("built padding", "rows", b.padding, "steady_state", k0, "kind", b.kind.String())

	// The last padding factor anchors the response so the two blocks join
	// without a jump. It is evaluated directly so N = 0 needs no special case.
	anchor := pre.Factor(-1)

	params.Merge(b.impulse)
	b.logger.Debug("applied impulse", "impulse", b.impulse)

	post, err := NewScaling(b.kind, params)
	if err != nil {
		return nil, err
	}

	points, err := b.model.Solve(ctx, 0, dynamo.State{k0}, stepSize, float64(b.horizon), b.integrator)
	if err != nil {
		return nil, &IntegrationError{Err: err}
	}
	if len(points) != b.horizon+1 {
		return nil, &IntegrationError{Err: fmt.Errorf("solver returned %d points, want %d", len(points), b.horizon+1)}
	}
	b.logger.Debug("integrated response", "integrator", b.integrator, "points", len(points))

	responseTimes := ResponseTimes(b.horizon)
	responseFactors := post.ResponseFactors(anchor, responseTimes)
	for i, p := range points {
		if len(p.Y) == 0 {
			return nil, &IntegrationError{Err: fmt.Errorf("%w: empty state at t=%g", dynamo.ErrDimensionMismatch, p.T)}
		}
		quad, err := b.evaluate(p.Y[0])
		if err != nil {
			return nil, err
		}
		data = appendRow(data, responseTimes[i], responseFactors[i], quad)
		b.logger.Log(ctx, logging.LevelTrace, "response row", "t", p.T, "k", p.Y[0], "factor", responseFactors[i])
	}

	return newTable(data, b.padding), nil
}

// validate runs every check that can fail before the model is mutated and
// returns the pre-shock scaling.
func (b *Builder) validate() (Scaling, error) {
	if b.impulse == nil {
		return Scaling{}, &ConfigurationError{Field: "impulse", Reason: "not set"}
	}
	params := b.model.Params()
	if err := b.impulse.validate(params); err != nil {
		return Scaling{}, err
	}
	if b.padding < 0 {
		return Scaling{}, &ConfigurationError{Field: "padding", Reason: fmt.Sprintf("must be non-negative, got %d", b.padding)}
	}
	if b.horizon < 0 {
		return Scaling{}, &ConfigurationError{Field: "horizon", Reason: fmt.Sprintf("must be non-negative, got %d", b.horizon)}
	}
	if !integrators.Known(b.integrator) {
		return Scaling{}, &ConfigurationError{Field: "integrator", Reason: fmt.Sprintf("%q is not one of %v", b.integrator, integrators.Names())}
	}
	return NewScaling(b.kind, params)
}

// evaluate returns capital, output, consumption and investment at k under
// the model's current parameters.
func (b *Builder) evaluate(k float64) ([4]float64, error) {
	quad := [4]float64{
		k,
		b.model.IntensiveOutput(k),
		b.model.Consumption(k),
		b.model.Investment(k),
	}
	for _, v := range quad {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return quad, &IntegrationError{Err: fmt.Errorf("%w: k=%g evaluates to %v", dynamo.ErrInvalidState, k, quad)}
		}
	}
	return quad, nil
}

func appendRow(data []float64, t, factor float64, quad [4]float64) []float64 {
	data = append(data, t)
	for _, v := range quad {
		data = append(data, factor*v)
	}
	return data
}
