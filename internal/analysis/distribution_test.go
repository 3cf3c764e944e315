package analysis

import (
	"testing"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeDistributionRawScenario(t *testing.T) {
	dist, err := OutcomeDistribution(bankTable(t), "y")
	require.NoError(t, err)

	assert.Equal(t, []string{"no", "yes"}, dist.Labels())
	assert.Equal(t, map[string]float64{"no": 70.0, "yes": 30.0}, dist.Percentages())
	assert.Equal(t, 10, dist.Total)
	assert.Equal(t, 7, dist.Shares[0].Count)
}

func TestOutcomeDistributionSumsToHundred(t *testing.T) {
	table := bankTable(t)

	for _, column := range []string{"job", "marital", "y", "age"} {
		t.Run(column, func(t *testing.T) {
			dist, err := OutcomeDistribution(table, column)
			require.NoError(t, err)

			sum := 0.0
			for _, share := range dist.Shares {
				assert.GreaterOrEqual(t, share.Percent, 0.0)
				assert.LessOrEqual(t, share.Percent, 100.0)
				sum += share.Percent
			}
			assert.InDelta(t, 100.0, sum, 1e-9)
		})
	}
}

func TestOutcomeDistributionEmptyTable(t *testing.T) {
	table := bankTable(t)
	empty, err := ApplyFilters(table, dataset.FilterSpec{"job": {"student"}})
	require.NoError(t, err)

	dist, err := OutcomeDistribution(empty, "y")
	require.NoError(t, err)
	assert.True(t, dist.IsEmpty())
	assert.Empty(t, dist.Percentages())

	dist, err = OutcomeDistribution(nil, "y")
	require.NoError(t, err)
	assert.True(t, dist.IsEmpty())
}

func TestOutcomeDistributionNaturalOrder(t *testing.T) {
	table, err := dataset.FromRecords([][]string{
		{"calls", "flag", "y"},
		{"10", "true", "b"},
		{"2", "false", "a"},
		{"10", "true", ""},
		{"33", "true", "c"},
	})
	require.NoError(t, err)

	calls, err := OutcomeDistribution(table, "calls")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "10", "33"}, calls.Labels(), "numbers sort numerically, not lexically")

	flags, err := OutcomeDistribution(table, "flag")
	require.NoError(t, err)
	assert.Equal(t, []string{"false", "true"}, flags.Labels())

	outcomes, err := OutcomeDistribution(table, "y")
	require.NoError(t, err)
	assert.Equal(t, 3, outcomes.Total, "missing values are not counted")
	assert.Equal(t, []string{"a", "b", "c"}, outcomes.Labels())
}

func TestOutcomeDistributionUnknownColumn(t *testing.T) {
	_, err := OutcomeDistribution(bankTable(t), "outcome")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}
