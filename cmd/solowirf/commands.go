package main

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/solowirf/internal/analysis"
	"github.com/san-kum/solowirf/internal/config"
	"github.com/san-kum/solowirf/internal/export"
	"github.com/san-kum/solowirf/internal/irf"
	"github.com/san-kum/solowirf/internal/logging"
	"github.com/san-kum/solowirf/internal/solow"
	"github.com/san-kum/solowirf/internal/viz"
)

// loadConfig resolves defaults, then --preset, then --config, then any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("production") {
		cfg.Production = production
	}
	if flags.Changed("kind") {
		cfg.Kind = kind
	}
	if flags.Changed("impulse") {
		imp, err := parseImpulse(impulse)
		if err != nil {
			return nil, err
		}
		cfg.Impulse = imp
	}
	if flags.Changed("padding") {
		cfg.Padding = padding
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseImpulse(raw map[string]string) (map[string]float64, error) {
	imp := make(map[string]float64, len(raw))
	for name, val := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("impulse %s: %w", name, err)
		}
		imp[name] = v
	}
	return imp, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
}

func chartOptions() (viz.ChartOptions, error) {
	v, err := irf.ParseVariable(variable)
	if err != nil {
		return viz.ChartOptions{}, err
	}
	return viz.ChartOptions{
		Variable: v,
		Log:      logScale,
		BGP:      !noBGP,
		Width:    width,
		Height:   height,
		Theme:    viz.GetTheme(theme),
	}, nil
}

func runIRF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	b, model, err := cfg.NewBuilder(irf.WithLogger(logger))
	if err != nil {
		return err
	}

	start := time.Now()
	table, err := b.Build(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("built impulse response", "rows", table.Len(), "elapsed", time.Since(start))

	if output != "" {
		v, err := irf.ParseVariable(variable)
		if err != nil {
			return err
		}
		scaling, err := b.Scaling()
		if err != nil {
			return err
		}
		meta := export.Meta{
			Production: cfg.Production,
			Kind:       b.Kind(),
			Integrator: cfg.Integrator,
			Impulse:    cfg.ImpulseMap(),
			Params:     model.Params().Clone(),
			Variable:   v,
			Scaling:    scaling,
		}
		if err := export.WriteFile(output, meta, table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", table.Len(), output)
		return nil
	}

	step := max(every, 1)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TIME\tCAPITAL\tOUTPUT\tCONSUMPTION\tINVESTMENT\t")
	rows := table.Rows()
	for i, r := range rows {
		if i%step != 0 && i != len(rows)-1 {
			continue
		}
		fmt.Fprintf(w, "%g\t%.6f\t%.6f\t%.6f\t%.6f\t\n", r.Time, r.Capital, r.Output, r.Consumption, r.Investment)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := chartOptions()
	if err != nil {
		return err
	}

	b, model, err := cfg.NewBuilder(irf.WithLogger(newLogger(cmd, cfg)))
	if err != nil {
		return err
	}
	table, err := b.Build(cmd.Context())
	if err != nil {
		return err
	}
	scaling, err := b.Scaling()
	if err != nil {
		return err
	}

	chart, err := viz.Chart(table, scaling, opts)
	if err != nil {
		return err
	}

	summary, err := analysis.CapitalConvergence(cmd.Context(), model, cfg.ImpulseMap(), cfg.BuilderOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, chart)
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Summary("capital convergence", summary, opts.Theme))
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := chartOptions()
	if err != nil {
		return err
	}

	if len(integList) > 0 {
		return compareIntegrators(cmd, cfg, opts)
	}

	var scenarios []irf.Scenario
	switch {
	case scenFile != "":
		f, err := config.LoadScenarios(scenFile)
		if err != nil {
			return err
		}
		if scenarios, err = f.Resolve(cfg); err != nil {
			return err
		}
		if f.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n\n", f.Name, f.Description)
		}
	case kinds:
		for _, k := range irf.Kinds() {
			scenarios = append(scenarios, irf.Scenario{Name: k.String(), Impulse: cfg.ImpulseMap(), Kind: k})
		}
	default:
		names := args
		if len(names) == 0 {
			names = config.ListPresets()
		}
		for _, name := range names {
			sc, err := config.PresetScenario(cfg, name)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, sc)
		}
	}

	newModel, err := modelFactory(cfg)
	if err != nil {
		return err
	}
	ens := irf.NewEnsemble(newModel, append(cfg.BuilderOptions(), irf.WithLogger(newLogger(cmd, cfg)))...)
	tables, err := ens.Run(cmd.Context(), scenarios)
	if err != nil {
		return err
	}

	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
	}
	chart, err := viz.Compare(tables, names, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), chart)
	return nil
}

// modelFactory builds the configured model once and hands out clones.
func modelFactory(cfg *config.Config) (func() irf.Model, error) {
	model, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	return func() irf.Model { return model.Clone() }, nil
}

func compareIntegrators(cmd *cobra.Command, cfg *config.Config, opts viz.ChartOptions) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators (%s, T=%d)\n\n", cfg.Kind, cfg.Horizon)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL\tMAX_DIFF\tTIME_MS")

	var (
		tables []*irf.Table
		names  []string
		ref    []float64
	)
	for _, name := range integList {
		c := cfg.Clone()
		c.Integrator = name

		b, _, err := c.NewBuilder()
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		start := time.Now()
		table, err := b.Build(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		col := table.Column(opts.Variable)
		if ref == nil {
			ref = col
		}
		diff := 0.0
		for i := range col {
			diff = max(diff, math.Abs(col[i]-ref[i]))
		}

		fmt.Fprintf(w, "%s\t%.8f\t%.2e\t%.2f\n", name, col[len(col)-1], diff, float64(elapsed.Microseconds())/1000)
		tables = append(tables, table)
		names = append(names, name)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(tables) == 0 {
		return fmt.Errorf("no integrator succeeded")
	}
	chart, err := viz.Compare(tables, names, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, chart)
	return nil
}

func runPhase(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	before, err := cfg.Model()
	if err != nil {
		return err
	}
	after := before.Clone()
	after.Params().Merge(cfg.ImpulseMap())
	if err := after.Validate(); err != nil {
		return fmt.Errorf("shocked parameters: %w", err)
	}

	k0, err := before.SteadyState()
	if err != nil {
		return err
	}
	k1, err := after.SteadyState()
	if err != nil {
		return err
	}

	hi := kMax
	if hi <= 0 {
		hi = 2 * max(k0, k1)
	}

	out := cmd.OutOrStdout()
	for _, p := range []struct {
		title string
		model *solow.Model
		kStar float64
	}{
		{"before the shock", before, k0},
		{"after the shock", after, k1},
	} {
		d, err := analysis.GeneratePhaseDiagram(p.model, hi/200, hi, 4*phaseW)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("dk/dt %s", p.title)))
		fmt.Fprint(out, d.ASCII(phaseW, phaseH))
		fmt.Fprintf(out, "k in [%.3g, %.3g]  steady state %.6g  crossings %v\n\n", hi/200, hi, p.kStar, formatFloats(d.Crossings()))
	}
	return nil
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	before, err := cfg.Model()
	if err != nil {
		return err
	}
	after := before.Clone()
	after.Params().Merge(cfg.ImpulseMap())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "production: %s\tkind: %s\n\n", cfg.Production, cfg.Kind)
	fmt.Fprintln(w, "PARAM\tBASELINE\tSHOCKED")
	for _, name := range before.Params().Names() {
		shocked := "-"
		if v, ok := cfg.Impulse[name]; ok {
			shocked = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintf(w, "%s\t%g\t%s\n", name, before.Params()[name], shocked)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEADY STATE\tBASELINE\tSHOCKED")
	for _, row := range []struct {
		name string
		eval func(m *solow.Model, k float64) float64
	}{
		{"capital", func(m *solow.Model, k float64) float64 { return k }},
		{"output", (*solow.Model).IntensiveOutput},
		{"consumption", (*solow.Model).Consumption},
		{"investment", (*solow.Model).Investment},
	} {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.name, steadyValue(before, row.eval), steadyValue(after, row.eval))
	}
	return w.Flush()
}

func steadyValue(m *solow.Model, eval func(*solow.Model, float64) float64) string {
	k, err := m.SteadyState()
	if err != nil {
		return "n/a"
	}
	return strconv.FormatFloat(eval(m, k), 'f', 6, 64)
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRODUCTION\tKIND\tIMPULSE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		var shocks []string
		for _, k := range p.ImpulseMap().Keys() {
			shocks = append(shocks, fmt.Sprintf("%s=%g", k, p.Impulse[k]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Production, p.Kind, strings.Join(shocks, ","))
	}
	return w.Flush()
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
