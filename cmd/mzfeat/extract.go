package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mzfeat/engine"
	"github.com/katalvlaran/mzfeat/feature"
	"github.com/katalvlaran/mzfeat/fgraph"
	"github.com/katalvlaran/mzfeat/internal/catalogue"
	"github.com/katalvlaran/mzfeat/internal/config"
	"github.com/katalvlaran/mzfeat/internal/fznreader"
	"github.com/katalvlaran/mzfeat/internal/output"
)

// exitGraphTimeout is returned when the graph-analysis stage hit its
// wall-clock budget; the feature row is still emitted (partial, with
// gr_* left at their -1 sentinel) rather than suppressed.
const exitGraphTimeout = 8

func extractCmd() *cobra.Command {
	var outputFlag string
	var sepFlag string
	var noGraph bool
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "extract <model-path>",
		Short: "Extract a feature row from a FlatZinc-style model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, _ := os.Getwd()
			cfg, err := config.Discover(cwd)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			if !cmd.Flags().Changed("output") {
				outputFlag = cfg.Output
			}
			if !cmd.Flags().Changed("sep") {
				sepFlag = cfg.Sep
			}
			if !cmd.Flags().Changed("no-graph") {
				noGraph = cfg.NoGraph
			}
			if !cmd.Flags().Changed("timeout") {
				timeoutFlag = time.Duration(cfg.Timeout)
			}

			format, err := output.ParseFormat(outputFlag)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			if len(sepFlag) != 1 {
				return fmt.Errorf("extract: --sep must be exactly one character, got %q", sepFlag)
			}

			opts := []engine.Option{engine.WithCatalogue(catalogue.New())}
			if noGraph {
				opts = append(opts, engine.WithoutGraphFeatures())
			} else if timeoutFlag > 0 {
				opts = append(opts, engine.WithGraphTimeout(&fgraph.Analyser{Timeout: timeoutFlag}))
			}
			e := engine.New(opts...)

			runID := uuid.New().String()[:8]
			log := logrus.WithFields(logrus.Fields{"run_id": runID, "model": args[0]})

			res, err := fznreader.ReadFile(args[0], e)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			for _, w := range res.Warnings {
				log.Warn(w)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag+5*time.Second)
			defer cancel()
			if err := e.Finalize(ctx); err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			describe := func(key string) string { return feature.Descriptions[key] }
			if err := output.Write(cmd.OutOrStdout(), format, e.SortedKeys(), e.Features(), sepFlag[0], describe); err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			if e.GraphAnalysisTimedOut() {
				os.Exit(exitGraphTimeout)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFlag, "output", "pp", "output format: csv, dict, or pp")
	cmd.Flags().StringVar(&sepFlag, "sep", ",", "field separator for the csv format")
	cmd.Flags().BoolVar(&noGraph, "no-graph", false, "skip the derived-graph feature block")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", fgraph.DefaultTimeout, "per-metric wall-clock budget for graph analysis")
	return cmd
}
