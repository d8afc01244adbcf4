package irf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Variable is one of the four reported model quantities.
type Variable int

const (
	Capital Variable = iota
	Output
	Consumption
	Investment
)

// numColumns is time plus the four variables.
const numColumns = 5

var variableNames = [...]string{
	Capital:     "capital",
	Output:      "output",
	Consumption: "consumption",
	Investment:  "investment",
}

func Variables() []Variable {
	return []Variable{Capital, Output, Consumption, Investment}
}

func (v Variable) Valid() bool {
	return v >= Capital && v <= Investment
}

func (v Variable) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variable(%d)", int(v))
	}
	return variableNames[v]
}

func ParseVariable(name string) (Variable, error) {
	for i, n := range variableNames {
		if n == name {
			return Variable(i), nil
		}
	}
	return 0, &ConfigurationError{
		Field:  "variable",
		Reason: fmt.Sprintf("%q must be one of %v", name, variableNames),
	}
}

// Row is one time point of a table.
type Row struct {
	Time        float64
	Capital     float64
	Output      float64
	Consumption float64
	Investment  float64
}

func (r Row) Value(v Variable) float64 {
	switch v {
	case Capital:
		return r.Capital
	case Output:
		return r.Output
	case Consumption:
		return r.Consumption
	default:
		return r.Investment
	}
}

// Table is an immutable impulse response: padding rows for t < 0 followed
// by response rows for t = 0..T, ordered by time. Columns are
// [time, capital, output, consumption, investment].
type Table struct {
	data    *mat.Dense
	padding int
}

func newTable(data []float64, padding int) *Table {
	return &Table{
		data:    mat.NewDense(len(data)/numColumns, numColumns, data),
		padding: padding,
	}
}

func (t *Table) Len() int {
	r, _ := t.data.Dims()
	return r
}

// Padding is the number of pre-shock rows.
func (t *Table) Padding() int { return t.padding }

// Horizon is the last response time.
func (t *Table) Horizon() int { return t.Len() - t.padding - 1 }

func (t *Table) Row(i int) Row {
	return Row{
		Time:        t.data.At(i, 0),
		Capital:     t.data.At(i, 1),
		Output:      t.data.At(i, 2),
		Consumption: t.data.At(i, 3),
		Investment:  t.data.At(i, 4),
	}
}

func (t *Table) Rows() []Row {
	rows := make([]Row, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

func (t *Table) Times() []float64 {
	return mat.Col(nil, 0, t.data)
}

// Column returns a copy of the values of v.
func (t *Table) Column(v Variable) []float64 {
	return mat.Col(nil, int(v)+1, t.data)
}

// Series returns the (time, value) pairs of v as two slices.
func (t *Table) Series(v Variable) (times, values []float64) {
	return t.Times(), t.Column(v)
}

// Matrix returns a copy of the underlying data.
func (t *Table) Matrix() *mat.Dense {
	return mat.DenseCopyOf(t.data)
}

// Equal reports whether both tables hold exactly the same values.
func (t *Table) Equal(other *Table) bool {
	return t.padding == other.padding && mat.Equal(t.data, other.data)
}
