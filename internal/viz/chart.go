package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/solowirf/internal/analysis"
	"github.com/san-kum/solowirf/internal/irf"
)

var ErrNonPositive = errors.New("viz: log scale needs positive values")

const (
	DefaultHeight = 15
	DefaultWidth  = 70
)

type ChartOptions struct {
	Variable irf.Variable
	Log      bool
	BGP      bool
	Width    int
	Height   int
	Theme    Theme
}

func (o ChartOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (o ChartOptions) caption(extra string) string {
	parts := []string{o.Variable.String()}
	if extra != "" {
		parts = append(parts, extra)
	}
	if o.Log {
		parts = append(parts, "log scale")
	}
	return strings.Join(parts, " · ")
}

// Chart plots one variable of t. With BGP set the balanced growth path of
// s is drawn as a second line.
func Chart(t *irf.Table, s irf.Scaling, opts ChartOptions) (string, error) {
	if !opts.Variable.Valid() {
		return "", fmt.Errorf("viz: unknown variable %v", opts.Variable)
	}

	_, values := t.Series(opts.Variable)
	series := [][]float64{values}
	colors := []asciigraph.AnsiColor{opts.Theme.seriesColor(0)}
	legends := []string{"response"}

	if opts.BGP {
		series = append(series, irf.BalancedGrowthPath(t, opts.Variable, s))
		colors = append(colors, opts.Theme.Reference)
		legends = append(legends, "balanced growth")
	}

	extra := fmt.Sprintf("%s, t = %d..%d", s.Kind, -t.Padding(), t.Horizon())
	return plot(series, colors, legends, opts, extra)
}

// Compare plots the same variable of several tables. names label the
// legend and must match tables in length.
func Compare(tables []*irf.Table, names []string, opts ChartOptions) (string, error) {
	if len(tables) == 0 || len(tables) != len(names) {
		return "", fmt.Errorf("viz: %d tables for %d names", len(tables), len(names))
	}

	series := make([][]float64, len(tables))
	colors := make([]asciigraph.AnsiColor, len(tables))
	for i, t := range tables {
		series[i] = t.Column(opts.Variable)
		colors[i] = opts.Theme.seriesColor(i)
	}
	return plot(series, colors, names, opts, "")
}

func plot(series [][]float64, colors []asciigraph.AnsiColor, legends []string, opts ChartOptions, extra string) (string, error) {
	if opts.Log {
		for i, s := range series {
			logged, err := logSeries(s)
			if err != nil {
				return "", fmt.Errorf("%s: %w", legends[i], err)
			}
			series[i] = logged
		}
	}

	w, h := opts.size()
	return asciigraph.PlotMany(series,
		asciigraph.Width(w),
		asciigraph.Height(h),
		asciigraph.Precision(3),
		asciigraph.Caption(opts.caption(extra)),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.AxisColor(opts.Theme.Axis),
	), nil
}

func logSeries(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			return nil, fmt.Errorf("%w: %g at index %d", ErrNonPositive, v, i)
		}
		out[i] = math.Log(v)
	}
	return out, nil
}

// Summary renders the convergence figures of a response in a box.
func Summary(title string, c analysis.Convergence, theme Theme) string {
	line := func(label, value string) string {
		return MetricLabel.Render(fmt.Sprintf("%-16s", label)) + MetricValue.Render(value)
	}

	halfLife := "not reached"
	if !math.IsNaN(c.HalfLife) {
		halfLife = fmt.Sprintf("%.2f", c.HalfLife)
	}

	rows := []string{
		line("start", fmt.Sprintf("%.6g", c.Start)),
		line("target", fmt.Sprintf("%.6g", c.Target)),
		line("half-life", halfLife),
		line("peak deviation", fmt.Sprintf("%.6g at t=%g", c.PeakDeviation, c.PeakTime)),
		line("residual gap", fmt.Sprintf("%.3g%%", 100*c.ResidualGap)),
	}
	return BoxWithTitle(title, strings.Join(rows, "\n"), 44, theme)
}
