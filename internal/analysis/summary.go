package analysis

import (
	"math"
	"sort"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"
)

// ColumnSummary describes the spread of one numeric column
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// SummarizeNumeric returns a summary for every int or float column, in
// column order. Columns without any non-missing value are reported with a
// zero count only.
func SummarizeNumeric(table *dataset.Table) ([]ColumnSummary, error) {
	if table == nil {
		return nil, nil
	}

	summaries := make([]ColumnSummary, 0)
	for _, name := range table.Columns() {
		s, err := table.Column(name)
		if err != nil {
			continue
		}
		if s.Type() != series.Int && s.Type() != series.Float {
			continue
		}
		summary, err := summarize(name, s)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize %s", name)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func summarize(name string, s series.Series) (ColumnSummary, error) {
	summary := ColumnSummary{Column: name}

	data := make(stats.Float64Data, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		elem := s.Elem(i)
		if elem.IsNA() {
			continue
		}
		data = append(data, elem.Float())
	}
	summary.Count = len(data)
	if summary.Count == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.Count > 1 {
		if summary.Std, err = stats.StandardDeviationSample(data); err != nil {
			return summary, err
		}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	summary.Q25 = quantile(sorted, 0.25)
	summary.Q75 = quantile(sorted, 0.75)
	return summary, nil
}

// quantile interpolates linearly between the closest ranks of sorted data,
// at position p*(n-1). This matches the default of pandas' describe().
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
