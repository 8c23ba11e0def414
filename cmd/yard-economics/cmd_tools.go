package main

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/internal/optimizer"
	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/format"
	"github.com/iwvelando/yard-economics/pkg/network"
	"github.com/iwvelando/yard-economics/pkg/validation"
	"github.com/spf13/cobra"
)

func newMultiplierCmd() *cobra.Command {
	params := network.DefaultParams()
	cmd := &cobra.Command{
		Use:   "multiplier N [N...]",
		Short: "Print the network multiplier for one or more network sizes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 1 {
					return fmt.Errorf("network size %q must be a positive integer", arg)
				}
				sizes = append(sizes, n)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%-10s | %-12s | %-11s | %s\n", "Facilities", "Connections", "Realization", "Multiplier")
			for _, r := range network.Curve(sizes, params) {
				_, _ = fmt.Fprintf(w, "%-10d | %-12.0f | %-11.4f | %s\n", r.N, r.Connections, r.Realization, format.Multiplier(r.Multiplier))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&params.Beta, "beta", params.Beta, "network strength")
	cmd.Flags().Float64Var(&params.Tau, "tau", params.Tau, "maturity constant in facilities")
	return cmd
}

type presetOptions struct {
	industry     string
	outputFormat string
}

func newPresetCmd() *cobra.Command {
	opts := &presetOptions{}
	cmd := &cobra.Command{
		Use:   "preset [SCENARIO [MODE]]",
		Short: "List presets, or project one scenario and mode",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printPresets(cmd)
				return nil
			}

			outputFormat := opts.outputFormat
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			ref := &config.PresetRef{Scenario: args[0], Industry: opts.industry}
			if len(args) == 2 {
				ref.Mode = args[1]
			}
			label := ref.Scenario
			if ref.Mode != "" {
				label += " / " + ref.Mode
			}

			result, err := projection.Evaluate(config.Scenario{Name: label, Active: true, Preset: ref})
			if err != nil {
				return err
			}
			if err := writeProjections(cmd, outputFormat, []projection.Projection{result}); err != nil {
				return err
			}
			if ref.Mode == "" && outputFormat == constants.OutputFormatPretty {
				return printModeRange(cmd, ref.Scenario, ref.Industry)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.industry, "industry", "", "industry preset applied on top of the scenario")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "pretty, csv or json")
	return cmd
}

func printPresets(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, "Scenarios:")
	for _, p := range economics.ScenarioPresets() {
		_, _ = fmt.Fprintf(w, "  %-14s %-13s %4d facilities  %s\n", p.ID, p.Label, p.Facilities, p.Description)
	}
	_, _ = fmt.Fprintln(w, "Modes:")
	for _, p := range economics.ModePresets() {
		_, _ = fmt.Fprintf(w, "  %-14s %-13s %s\n", p.ID, p.Label, p.Description)
	}
	_, _ = fmt.Fprintln(w, "Industries:")
	for _, p := range economics.IndustryPresets() {
		_, _ = fmt.Fprintf(w, "  %-14s %-13s %s\n", p.ID, p.Label, p.Description)
	}
}

// printModeRange shows the conservative to upside span of a scenario.
func printModeRange(cmd *cobra.Command, scenarioID, industry string) error {
	results := make(map[string]economics.RoiV2Result, 3)
	for _, mode := range []string{economics.ModeConservative, economics.ModeExpected, economics.ModeUpside} {
		p, err := projection.Evaluate(config.Scenario{
			Name:   mode,
			Active: true,
			Preset: &config.PresetRef{Scenario: scenarioID, Mode: mode, Industry: industry},
		})
		if err != nil {
			return err
		}
		results[mode] = p.Result
	}
	span := func(value func(economics.RoiV2Result) float64, f func(float64) string) string {
		return format.Range(
			value(results[economics.ModeConservative]),
			value(results[economics.ModeExpected]),
			value(results[economics.ModeUpside]),
			f,
		)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Annual savings range: %s\n", span(func(r economics.RoiV2Result) float64 { return r.TotalAnnualSavings }, format.Money))
	_, _ = fmt.Fprintf(w, "Five-year value range: %s\n", span(func(r economics.RoiV2Result) float64 { return r.FiveYearValue }, format.Money))
	return nil
}

type breakEvenOptions struct {
	mode             string
	industry         string
	targetMultiplier float64
	tolerance        float64
}

func newBreakEvenCmd(root *rootOptions) *cobra.Command {
	opts := &breakEvenOptions{}
	cmd := &cobra.Command{
		Use:   "breakeven SCENARIO",
		Short: "Solve the break-even ramp and the network size for a target multiplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(config.LoggingConfig{}, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			targets := []config.OptimizerConfig{
				{Kind: config.OptimizerKindBreakEvenRamp, Tolerance: opts.tolerance},
			}
			if opts.targetMultiplier > 0 {
				targets = append(targets, config.OptimizerConfig{
					Kind:             config.OptimizerKindMinFacilities,
					TargetMultiplier: opts.targetMultiplier,
				})
			}
			for i := range targets {
				targets[i].Normalize()
			}

			scenario := config.Scenario{
				Name:    args[0],
				Active:  true,
				Preset:  &config.PresetRef{Scenario: args[0], Mode: opts.mode, Industry: opts.industry},
				Targets: targets,
			}
			conf := &config.Configuration{Scenarios: []config.Scenario{scenario}}

			runner, err := optimizer.NewRunner(logger, conf)
			if err != nil {
				return err
			}
			result, err := runner.Run()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, summary := range result.Summaries[scenario.Name] {
				status := "converged"
				if !summary.Converged {
					status = "not converged"
				}
				_, _ = fmt.Fprintf(w, "%-16s %-14s (%s after %d iterations)\n", summary.TargetName, summary.ValueDisplay, status, summary.Iterations)
				for _, note := range summary.Notes {
					_, _ = fmt.Fprintf(w, "  note: %s\n", note)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.mode, "mode", economics.ModeExpected, "conservative, expected or upside")
	cmd.Flags().StringVar(&opts.industry, "industry", "", "industry preset applied on top of the scenario")
	cmd.Flags().Float64Var(&opts.targetMultiplier, "target-multiplier", 0, "also solve the smallest network reaching this multiplier")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "ramp share tolerance (default 0.0001)")
	return cmd
}
