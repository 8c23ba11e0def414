package main

import (
	"fmt"

	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/internal/optimizer"
	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/output"
	"github.com/iwvelando/yard-economics/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type projectOptions struct {
	configLocation string
	outputFormat   string
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run every active scenario in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	return cmd
}

func runProject(cmd *cobra.Command, root *rootOptions, opts *projectOptions) error {
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, root.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.project"),
		)
	}

	results, err := projection.GetProjections(cmd.Context(), logger, *conf)
	if err != nil {
		logger.Error("failed to compute projections",
			zap.String("op", "main.project"),
			zap.Error(err),
		)
		return err
	}

	runner, err := optimizer.NewRunner(logger, conf)
	if err != nil {
		return err
	}
	optimizationResult, err := runner.Run()
	if err != nil {
		logger.Error("failed to solve break-even targets",
			zap.String("op", "main.project"),
			zap.Error(err),
		)
		return err
	}
	optimizationResult.Apply(results)

	return writeProjections(cmd, outputFormat, results)
}

func writeProjections(cmd *cobra.Command, outputFormat string, results []projection.Projection) error {
	w := cmd.OutOrStdout()
	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, results)
	default:
		output.PrettyFormat(w, results)
		return nil
	}
}
