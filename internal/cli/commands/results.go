package commands

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/cli/output"
	"github.com/gridsim-labs/gridsim/internal/results"
)

// ResultsOptions holds options for the results command.
type ResultsOptions struct {
	Format string
}

// NewResultsCommand creates the results command.
func NewResultsCommand() *cobra.Command {
	opts := &ResultsOptions{}

	cmd := &cobra.Command{
		Use:   "results [dir]",
		Short: "Collect score statistics from simulation output",
		Long: `Walk the scenarios directory for output*/scorestats.txt files written
by MATSim and report the final-iteration score averages of every
variant.`,
		Example: `  # Summarize every completed run
  gridsim results

  # One sweep only, as CSV for plotting
  gridsim results scenarios/density --format csv

  # Machine-readable
  gridsim results --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResults(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, csv")

	return cmd
}

func runResults(cmd *cobra.Command, opts *ResultsOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	root := cfg.ScenariosDir
	if len(args) > 0 {
		root = args[0]
	}

	entries, err := results.Collect(root)
	if err != nil {
		return err
	}

	if opts.Format == "csv" {
		return writeResultsCSV(cmd, entries)
	}
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if r.IsJSON() {
		return r.JSON(entries)
	}

	if len(entries) == 0 {
		r.Warning("No score statistics found")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Group,
			e.Variant,
			strconv.Itoa(e.Iterations),
			formatScore(e.Final.Executed),
			formatScore(e.Final.Worst),
			formatScore(e.Final.Avg),
			formatScore(e.Final.Best),
		})
	}
	r.Table(
		[]string{"Scenario", "Variant", "Iterations", "Executed", "Worst", "Avg", "Best"},
		rows,
	)
	return nil
}

func writeResultsCSV(cmd *cobra.Command, entries []results.Entry) error {
	w := csv.NewWriter(cmd.OutOrStdout())
	header := []string{"scenario", "variant", "iterations", "executed", "worst", "avg", "best"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Group,
			e.Variant,
			strconv.Itoa(e.Iterations),
			formatScore(e.Final.Executed),
			formatScore(e.Final.Worst),
			formatScore(e.Final.Avg),
			formatScore(e.Final.Best),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
