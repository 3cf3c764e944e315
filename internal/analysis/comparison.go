package analysis

import (
	"fmt"
	"math"

	"telemarketing/domain/dataset"

	"gonum.org/v1/gonum/stat/distuv"
)

// Comparison is a chi-square test of homogeneity between the filtered rows
// and the rows the filters removed, over the outcome column.
type Comparison struct {
	ChiSquare        float64
	DegreesOfFreedom int
	PValue           float64
	CramersV         float64
	FilteredRows     int
	RemainingRows    int
}

// Significant reports whether the outcome mix differs at level alpha.
func (c Comparison) Significant(alpha float64) bool {
	return c.PValue < alpha
}

// Describe renders the test result as a single line.
func (c Comparison) Describe() string {
	verdict := "does not differ significantly from"
	if c.Significant(0.05) {
		verdict = "differs significantly from"
	}
	return fmt.Sprintf("Filtered outcome mix %s the excluded rows (χ²=%.3f, df=%d, p=%.4f, V=%.3f)",
		verdict, c.ChiSquare, c.DegreesOfFreedom, c.PValue, c.CramersV)
}

// CompareDistributions tests filtered against raw minus filtered. filtered must
// be computed from a subset of the rows behind raw. The second return value
// is false when the test does not apply: nothing was filtered out, nothing
// remained, or the outcome has a single value.
func CompareDistributions(raw, filtered dataset.OutcomeDistribution) (Comparison, bool) {
	filteredCounts := make(map[string]int, len(filtered.Shares))
	for _, share := range filtered.Shares {
		filteredCounts[share.Value] = share.Count
	}

	remainingTotal := raw.Total - filtered.Total
	if filtered.Total == 0 || remainingTotal <= 0 || len(raw.Shares) < 2 {
		return Comparison{}, false
	}

	// 2 x k contingency table: filtered row, remaining row
	table := make([][2]float64, 0, len(raw.Shares))
	for _, share := range raw.Shares {
		f := filteredCounts[share.Value]
		table = append(table, [2]float64{float64(f), float64(share.Count - f)})
	}

	n := float64(raw.Total)
	rowTotals := [2]float64{float64(filtered.Total), float64(remainingTotal)}
	chiSq := 0.0
	for _, col := range table {
		colTotal := col[0] + col[1]
		for r := 0; r < 2; r++ {
			expected := rowTotals[r] * colTotal / n
			if expected > 0 {
				chiSq += math.Pow(col[r]-expected, 2) / expected
			}
		}
	}

	df := len(table) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return Comparison{
		ChiSquare:        chiSq,
		DegreesOfFreedom: df,
		PValue:           1 - dist.CDF(chiSq),
		CramersV:         math.Sqrt(chiSq / n),
		FilteredRows:     filtered.Total,
		RemainingRows:    remainingTotal,
	}, true
}
