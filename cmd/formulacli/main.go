// Package main provides formulacli, a terminal front end for the
// astrology formula DSL: tokenize, parse, validate, and evaluate a
// formula against a JSON-encoded chart, without standing up the HTTP
// server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formulacli",
		Short: "Tokenize, parse, validate, and evaluate astrology formulas",
		Long: `formulacli is a terminal client for the astrology formula DSL core.
It exercises the same lexer, parser, validator, and evaluator the HTTP
API wraps, against a chart supplied as a JSON file.`,
	}

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newEvaluateCmd())

	return cmd
}
