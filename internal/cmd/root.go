// Copyright (c) 2023 Colin McRae

// Package cmd implements the qsearch command tree.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/predrag3141/qseries/internal/style"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "0.1.0"

// rootOptions holds the state shared by every subcommand
type rootOptions struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: newLogger(io.Discard, false)}
	rootCmd := &cobra.Command{
		Use:   "qsearch",
		Short: "Convert q-series to products and search for relations among them",
		Long: `qsearch builds truncated q-series from a catalog of named products and
sums, converts them to infinite products, eta quotients and Jacobi products,
and searches for linear, polynomial, congruence and product relations.

Examples:
  qsearch series                                  # List the series catalog
  qsearch prodmake --series rrg --order 60        # Rogers-Ramanujan G as a product
  qsearch jacprodmake --series rrg --order 60
  qsearch findcong --series partition --order 200
  qsearch run job.toml                            # Run every analysis in a job file`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log timings and search sizes to stderr")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newSeriesCmd())
	for _, c := range newConvertCmds(opts) {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(newFindCongCmd(opts))
	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the command named by os.Args and returns the process exit
// code.
func Execute() int {
	return execute(newRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		code, quiet := exitCode(err)
		if !quiet {
			fmt.Fprintf(stderr, "%s %s\n", style.ErrorPrefix, style.Error.Render(err.Error()))
		}
		return code
	}
	return 0
}
