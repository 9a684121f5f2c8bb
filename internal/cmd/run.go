// Copyright (c) 2023 Colin McRae

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/predrag3141/qseries/internal/config"
	"github.com/predrag3141/qseries/internal/style"
	"github.com/predrag3141/qseries/products"
	"github.com/predrag3141/qseries/series"
	"github.com/spf13/cobra"
)

// notFoundExitCode is returned by run --strict when a search finds nothing
const notFoundExitCode = 2

func newRunCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	runCmd := &cobra.Command{
		Use:   "run <job.toml>",
		Short: "Run every analysis in a job file",
		Long: `Run builds the series defined in a TOML job file and runs its analyses in
order. A failed analysis is reported and the rest still run.

Example job:

  order = 100

  [[series]]
  name = "p"
  kind = "partition"

  [[analysis]]
  op = "findcong"
  target = "p"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := config.Load(args[0])
			if err != nil {
				return err
			}
			return runJob(cmd.OutOrStdout(), opts.logger, job, strict)
		},
	}
	runCmd.Flags().BoolVar(&strict, "strict", false,
		fmt.Sprintf("Exit with code %d if any search finds nothing", notFoundExitCode))
	return runCmd
}

// buildSeries builds every series a job defines
func buildSeries(job *config.Job, logger *slog.Logger) (map[string]*series.Series, error) {
	retVal := make(map[string]*series.Series, len(job.Series))
	for _, spec := range job.Series {
		var s *series.Series
		var err error
		if spec.Kind == config.CoeffsKind {
			s, err = series.FromStrings(spec.Coeffs, spec.Order)
		} else {
			s, err = products.Build(spec.Kind, spec.Args, spec.Order)
		}
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", spec.Name, err)
		}
		logger.Debug("built series",
			slog.String("name", spec.Name),
			slog.String("kind", spec.Kind),
			slog.Int("order", spec.Order),
			slog.Int("terms", s.NumTerms()),
		)
		retVal[spec.Name] = s
	}
	return retVal, nil
}

func runJob(w io.Writer, logger *slog.Logger, job *config.Job, strict bool) error {
	built, err := buildSeries(job, logger)
	if err != nil {
		return err
	}
	ws := &workspace{series: built, logger: logger}

	var failed, notFound int
	for i := range job.Analyses {
		result, err := runAnalysis(w, ws, &job.Analyses[i])
		switch {
		case err != nil:
			failed++
		case result == outcomeNotFound:
			notFound++
		}
	}

	summary := fmt.Sprintf("%d analyses, %d failed, %d found nothing", len(job.Analyses), failed, notFound)
	fmt.Fprintln(w, style.Dim.Render(summary))
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(job.Analyses))
	}
	if strict && notFound > 0 {
		return &notFoundError{notFound: notFound, total: len(job.Analyses)}
	}
	return nil
}
