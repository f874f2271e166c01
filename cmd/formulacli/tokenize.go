package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/astroformula/dsl/internal/dsl"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <formula>",
		Short: "Print the token stream for a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := dsl.Tokenize(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLITERAL\tLINE\tCOL")
			for _, tok := range tokens {
				fmt.Fprintf(w, "%s\t%q\t%d\t%d\n", tok.Type, tok.Literal, tok.Line, tok.Column)
			}
			return w.Flush()
		},
	}
}
