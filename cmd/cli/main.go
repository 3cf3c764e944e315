package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"telemarketing/adapters/charts"
	"telemarketing/adapters/excel"
	"telemarketing/domain/dataset"
	"telemarketing/internal/analysis"
	"telemarketing/internal/dashboard"

	"github.com/spf13/cobra"
)

type filterOptions struct {
	file    string
	filters []string
}

func (o *filterOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "filters", "", "YAML file mapping column to selected values")
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "Filter as column=value1,value2 (repeatable; 'all' keeps every row)")
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "telemarketing-cli",
		Short:         "Filter telemarketing campaign files and compare acceptance rates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService(outcome string) *dashboard.Service {
	return dashboard.NewService(dashboard.Config{OutcomeColumn: outcome},
		excel.NewDataReader(excel.DefaultReaderConfig()),
		charts.NewBarChartRenderer())
}

func newSummaryCmd() *cobra.Command {
	var opts filterOptions
	var outcome, output, chartDir string

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print the outcome distribution of the raw and filtered data",
		Long: `Load a CSV or Excel file, apply the filters and print the outcome
distribution of both the raw and the filtered rows, plus numeric summaries and
a chi-square comparison.

Example: telemarketing-cli summary bank.csv --filter job=admin.,technician --filter marital=married`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.OutOrStdout(), args[0], opts, outcome, output, chartDir)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&outcome, "outcome", "y", "Outcome column")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")
	cmd.Flags().StringVar(&chartDir, "charts", "", "Directory to write raw.png and filtered.png into")

	return cmd
}

func newExportCmd() *cobra.Command {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "export [file] [out.xlsx]",
		Short: "Write the filtered rows to an Excel file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func runSummary(w io.Writer, path string, opts filterOptions, outcome, output, chartDir string) error {
	spec, err := buildSpec(opts.file, opts.filters)
	if err != nil {
		return err
	}

	table, err := excel.NewDataReader(excel.DefaultReaderConfig()).LoadFile(path)
	if err != nil {
		return err
	}

	service := newService(outcome)
	result, err := service.Analyze(nil, table, spec)
	if err != nil {
		return err
	}

	if chartDir != "" {
		if err := writeCharts(chartDir, result); err != nil {
			return err
		}
	}

	return newPrinter(w, output).printReport(newReport(path, result))
}

func runExport(w io.Writer, path, out string, opts filterOptions) error {
	spec, err := buildSpec(opts.file, opts.filters)
	if err != nil {
		return err
	}

	table, err := excel.NewDataReader(excel.DefaultReaderConfig()).LoadFile(path)
	if err != nil {
		return err
	}

	filtered, err := analysis.ApplyFilters(table, spec)
	if err != nil {
		return err
	}
	data, err := excel.ToExcel(filtered)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(w, "Wrote %d of %d rows to %s\n", filtered.Len(), table.Len(), out)
	return nil
}

func writeCharts(dir string, result *dashboard.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	renderer := charts.NewBarChartRenderer()
	for name, chart := range map[string]struct {
		title string
		dist  dataset.OutcomeDistribution
	}{
		"raw.png":      {dashboard.RawChartTitle, result.RawDist},
		"filtered.png": {dashboard.FilteredChartTitle, result.FilteredDist},
	} {
		if chart.dist.IsEmpty() {
			continue
		}
		png, err := renderer.RenderPNG(chart.title, chart.dist)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), png, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
