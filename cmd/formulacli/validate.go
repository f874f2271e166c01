package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroformula/dsl/internal/dignity"
	"github.com/astroformula/dsl/internal/dsl"
)

func newValidateCmd() *cobra.Command {
	var dignityPath string

	cmd := &cobra.Command{
		Use:   "validate <formula>",
		Short: "Validate a formula's syntax and astrological soundness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadDignityConfig(dignityPath)
			if err != nil {
				return err
			}

			_, diags, err := dsl.ValidateFormula(args[0], cfg)
			if err != nil {
				return err
			}

			if len(diags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "OK: no diagnostics")
				return nil
			}
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			if hasErrors(diags) {
				return fmt.Errorf("formula has validation errors")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dignityPath, "dignity-config", "", "path to a dignity configuration YAML file")
	return cmd
}

func hasErrors(diags []dsl.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == dsl.SeverityError {
			return true
		}
	}
	return false
}

func loadDignityConfig(path string) (*dignity.Config, error) {
	if path == "" {
		return dignity.Default(), nil
	}
	return dignity.LoadFile(path)
}
