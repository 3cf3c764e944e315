package analysis

import (
	"encoding/json"
	"testing"

	"telemarketing/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeNumeric(t *testing.T) {
	summaries, err := SummarizeNumeric(bankTable(t))
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	age := summaries[0]
	assert.Equal(t, "age", age.Column)
	assert.Equal(t, 10, age.Count)
	assert.InDelta(t, 38.5, age.Mean, 1e-9)
	assert.Equal(t, 25.0, age.Min)
	assert.Equal(t, 52.0, age.Max)
	assert.InDelta(t, 38.5, age.Median, 1e-9)
	assert.InDelta(t, 31.75, age.Q25, 1e-9)
	assert.InDelta(t, 45.25, age.Q75, 1e-9)
	assert.InDelta(t, 9.083, age.Std, 1e-3)
}

func TestSummarizeNumericSmallSubsets(t *testing.T) {
	tests := []struct {
		name    string
		ages    []string
		q25     float64
		median  float64
		q75     float64
		wantStd bool
	}{
		{name: "single row", ages: []string{"41"}, q25: 41, median: 41, q75: 41},
		{name: "two rows", ages: []string{"35", "30"}, q25: 31.25, median: 32.5, q75: 33.75, wantStd: true},
		{name: "three rows", ages: []string{"30", "40", "50"}, q25: 35, median: 40, q75: 45, wantStd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := [][]string{{"age", "y"}}
			for _, age := range tt.ages {
				records = append(records, []string{age, "no"})
			}
			table, err := dataset.FromRecords(records)
			require.NoError(t, err)

			summaries, err := SummarizeNumeric(table)
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			got := summaries[0]
			assert.InDelta(t, tt.q25, got.Q25, 1e-9)
			assert.InDelta(t, tt.median, got.Median, 1e-9)
			assert.InDelta(t, tt.q75, got.Q75, 1e-9)
			if !tt.wantStd {
				assert.Equal(t, 0.0, got.Std)
			}

			_, err = json.Marshal(summaries)
			assert.NoError(t, err, "summaries must be JSON encodable")
		})
	}
}

func TestSummarizeNumericSkipsMissing(t *testing.T) {
	table, err := dataset.FromRecords([][]string{
		{"duration", "y"},
		{"100", "no"},
		{"", "yes"},
	})
	require.NoError(t, err)

	summaries, err := SummarizeNumeric(table)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Count)
	assert.Equal(t, 100.0, summaries[0].Mean)
	assert.Equal(t, 0.0, summaries[0].Std)
	assert.Equal(t, 100.0, summaries[0].Q25)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-9)
	assert.Equal(t, 4.0, quantile(sorted, 1))
	assert.Equal(t, 1.0, quantile(sorted, 0))
}
