package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astroformula/dsl/internal/chart"
	"github.com/astroformula/dsl/internal/dsl"
)

func newEvaluateCmd() *cobra.Command {
	var dignityPath, chartPath string

	cmd := &cobra.Command{
		Use:   "evaluate <formula>",
		Short: "Evaluate a formula against a JSON-encoded chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chartPath == "" {
				return fmt.Errorf("--chart is required")
			}
			c, err := loadChart(chartPath)
			if err != nil {
				return err
			}
			cfg, err := loadDignityConfig(dignityPath)
			if err != nil {
				return err
			}

			result, diags, err := dsl.Evaluate(args[0], c, cfg)
			for _, d := range diags {
				fmt.Fprintln(cmd.ErrOrStderr(), d.String())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "", "path to a JSON-encoded chart file")
	cmd.Flags().StringVar(&dignityPath, "dignity-config", "", "path to a dignity configuration YAML file")
	return cmd
}

func loadChart(path string) (*chart.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart file: %w", err)
	}
	var c chart.Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding chart JSON: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart: %w", err)
	}
	return &c, nil
}
