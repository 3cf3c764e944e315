package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"telemarketing/domain/dataset"
	"telemarketing/internal/analysis"
	"telemarketing/internal/dashboard"

	"gopkg.in/yaml.v3"
)

type shareReport struct {
	Value   string  `json:"value" yaml:"value"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type comparisonReport struct {
	ChiSquare        float64 `json:"chi_square" yaml:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom" yaml:"degrees_of_freedom"`
	PValue           float64 `json:"p_value" yaml:"p_value"`
	CramersV         float64 `json:"cramers_v" yaml:"cramers_v"`
	Summary          string  `json:"summary" yaml:"summary"`
}

type report struct {
	File         string                   `json:"file" yaml:"file"`
	Outcome      string                   `json:"outcome" yaml:"outcome"`
	Filters      dataset.FilterSpec       `json:"filters" yaml:"filters"`
	TotalRows    int                      `json:"total_rows" yaml:"total_rows"`
	FilteredRows int                      `json:"filtered_rows" yaml:"filtered_rows"`
	Raw          []shareReport            `json:"raw" yaml:"raw"`
	Filtered     []shareReport            `json:"filtered" yaml:"filtered"`
	Summaries    []analysis.ColumnSummary `json:"summaries" yaml:"summaries"`
	Comparison   *comparisonReport        `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

func newReport(path string, result *dashboard.Result) report {
	r := report{
		File:         path,
		Outcome:      result.RawDist.Column,
		Filters:      result.Spec,
		TotalRows:    result.Raw.Len(),
		FilteredRows: result.Filtered.Len(),
		Raw:          shares(result.RawDist),
		Filtered:     shares(result.FilteredDist),
		Summaries:    result.Summaries,
	}
	if c := result.Comparison; c != nil {
		r.Comparison = &comparisonReport{
			ChiSquare:        c.ChiSquare,
			DegreesOfFreedom: c.DegreesOfFreedom,
			PValue:           c.PValue,
			CramersV:         c.CramersV,
			Summary:          c.Describe(),
		}
	}
	return r
}

func shares(dist dataset.OutcomeDistribution) []shareReport {
	out := make([]shareReport, 0, len(dist.Shares))
	for _, s := range dist.Shares {
		out = append(out, shareReport{Value: s.Value, Count: s.Count, Percent: s.Percent})
	}
	return out
}

// printer writes a report as an aligned table, JSON or YAML
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{format: format, w: w}
}

func (p *printer) printReport(r report) error {
	switch p.format {
	case "json":
		encoder := json.NewEncoder(p.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case "yaml":
		encoder := yaml.NewEncoder(p.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return err
		}
		return encoder.Close()
	case "table", "":
		return p.printTable(r)
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", p.format)
	}
}

func (p *printer) printTable(r report) error {
	fmt.Fprintf(p.w, "%s: %d of %d rows match\n\n", r.File, r.FilteredRows, r.TotalRows)

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\traw %%\traw n\tfiltered %%\tfiltered n\n", r.Outcome)
	filtered := make(map[string]shareReport, len(r.Filtered))
	for _, s := range r.Filtered {
		filtered[s.Value] = s
	}
	for _, s := range r.Raw {
		f := filtered[s.Value]
		fmt.Fprintf(w, "%s\t%.1f\t%d\t%.1f\t%d\n", s.Value, s.Percent, s.Count, f.Percent, f.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(r.Summaries) > 0 {
		fmt.Fprintln(p.w)
		w = tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
		for _, s := range r.Summaries {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				s.Column, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if r.Comparison != nil {
		fmt.Fprintf(p.w, "\n%s\n", r.Comparison.Summary)
	}
	return nil
}
