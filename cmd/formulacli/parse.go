package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroformula/dsl/internal/dsl"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <formula>",
		Short: "Parse a formula and print its pretty-printed AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := dsl.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dsl.String(node))
			return nil
		},
	}
}
