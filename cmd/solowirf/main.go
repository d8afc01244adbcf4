package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/solowirf/internal/config"
	"github.com/san-kum/solowirf/internal/integrators"
	"github.com/san-kum/solowirf/internal/tui"
)

var (
	configFile string
	preset     string
	logLevel   string

	production string
	kind       string
	impulse    map[string]string
	padding    int
	horizon    int
	integrator string
	tolerance  float64
	maxDt      float64

	output    string
	every     int
	variable  string
	logScale  bool
	noBGP     bool
	theme     string
	width     int
	height    int
	kinds     bool
	scenFile  string
	integList []string
	kMax      float64
	phaseW    int
	phaseH    int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "solowirf",
		Short:        "impulse responses of the Solow growth model",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (error, warn, info, debug, trace)")
	pf.StringVar(&production, "production", "cobb_douglas", "production function (cobb_douglas, ces)")
	pf.StringVar(&kind, "kind", "efficiency_units", "units (efficiency_units, per_capita, levels)")
	pf.StringToStringVar(&impulse, "impulse", nil, "post-shock parameter values, e.g. s=0.25,g=0.03")
	pf.IntVar(&padding, "padding", config.DefaultPadding, "pre-shock rows N")
	pf.IntVar(&horizon, "horizon", config.DefaultHorizon, "last response time T")
	pf.StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	pf.Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "adaptive step tolerance")
	pf.Float64Var(&maxDt, "max-dt", config.DefaultMaxDt, "largest internal step")

	irfCmd := &cobra.Command{
		Use:   "irf",
		Short: "compute an impulse response table",
		Args:  cobra.NoArgs,
		RunE:  runIRF,
	}
	irfCmd.Flags().StringVarP(&output, "output", "o", "", "write to file (.csv, .json, .svg) instead of stdout")
	irfCmd.Flags().IntVar(&every, "every", 1, "print every n-th row")
	irfCmd.Flags().StringVar(&variable, "var", "capital", "variable drawn by .svg output")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "chart one variable of an impulse response",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	addChartFlags(plotCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "chart several presets, unit kinds or integrators together",
		RunE:  runCompare,
	}
	addChartFlags(compareCmd)
	compareCmd.Flags().BoolVar(&kinds, "kinds", false, "compare the three unit kinds of one configuration")
	compareCmd.Flags().StringVar(&scenFile, "scenarios", "", "YAML file listing the scenarios to compare")
	compareCmd.Flags().StringSliceVar(&integList, "integrators", nil, "compare integrators against each other")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase diagram of capital before and after the shock",
		Args:  cobra.NoArgs,
		RunE:  runPhase,
	}
	phaseCmd.Flags().Float64Var(&kMax, "k-max", 0, "right end of the k axis (default 2x the larger steady state)")
	phaseCmd.Flags().IntVar(&phaseW, "width", 70, "diagram width")
	phaseCmd.Flags().IntVar(&phaseH, "height", 16, "diagram height")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show baseline and shocked parameters with their steady states",
		Args:  cobra.NoArgs,
		RunE:  runParams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInitConfig,
	}

	rootCmd.AddCommand(irfCmd, plotCmd, compareCmd, exploreCmd, phaseCmd, paramsCmd, presetsCmd, initCmd)
	return rootCmd
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&variable, "var", "capital", "variable (capital, output, consumption, investment)")
	cmd.Flags().BoolVar(&logScale, "log", false, "log scale")
	cmd.Flags().BoolVar(&noBGP, "no-bgp", false, "hide the balanced growth path")
	cmd.Flags().StringVar(&theme, "theme", "terminal", "color theme")
	cmd.Flags().IntVar(&width, "width", 0, "chart width")
	cmd.Flags().IntVar(&height, "height", 0, "chart height")
}
