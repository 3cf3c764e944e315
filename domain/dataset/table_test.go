package dataset

import (
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() [][]string {
	return [][]string{
		{"age", "job", "balance", "y"},
		{"30", "admin.", "1.5", "no"},
		{"41", "technician", "", "yes"},
		{"25", "admin.", "3.25", "no"},
	}
}

func TestFromRecordsInfersTypes(t *testing.T) {
	table, err := FromRecords(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "job", "balance", "y"}, table.Columns())
	assert.Equal(t, 3, table.Len())

	ageType, err := table.ColumnType("age")
	require.NoError(t, err)
	assert.Equal(t, series.Int, ageType)

	balanceType, err := table.ColumnType("balance")
	require.NoError(t, err)
	assert.Equal(t, series.Float, balanceType)

	jobType, err := table.ColumnType("job")
	require.NoError(t, err)
	assert.Equal(t, series.String, jobType)
}

func TestFromRecordsHeaderOnly(t *testing.T) {
	table, err := FromRecords([][]string{{"job", "y"}})
	require.NoError(t, err)

	assert.True(t, table.IsEmpty())
	assert.Equal(t, []string{"job", "y"}, table.Columns())
	assert.Empty(t, table.Rows())
}

func TestFromRecordsWithoutHeader(t *testing.T) {
	_, err := FromRecords(nil)
	assert.Error(t, err)
}

func TestHeadAndUnique(t *testing.T) {
	table, err := FromRecords(sampleRecords())
	require.NoError(t, err)

	head := table.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, 3, table.Len(), "head must not modify the source table")
	assert.Same(t, table, table.Head(10))

	jobs, err := table.Unique("job")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin.", "technician"}, jobs)

	_, err = table.Unique("missing")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	a, err := FromRecords(sampleRecords())
	require.NoError(t, err)
	b, err := FromRecords(sampleRecords())
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(a.Head(1)))
}

func TestFilterSpecSelection(t *testing.T) {
	spec := NewWildcardSpec([]string{"job", "marital"})
	spec["marital"] = []string{"married"}

	assert.True(t, IsWildcard(spec["job"]))
	assert.Equal(t, []string{"marital"}, spec.Constrained())
	assert.True(t, spec.Selected("job", Wildcard))
	assert.True(t, spec.Selected("marital", "married"))
	assert.False(t, spec.Selected("marital", Wildcard))
	assert.True(t, spec.Selected("contact", Wildcard), "absent columns behave as wildcard")
}

func TestDisplayFormatting(t *testing.T) {
	table, err := FromRecords([][]string{
		{"campaign", "balance", "y"},
		{"1", "1.5", "no"},
		{"", "3", "yes"},
		{"2", "", "no"},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"1", "1.5", "no"},
		{"", "3", "yes"},
		{"2", "", "no"},
	}, table.Rows())

	balances, err := table.Unique("balance")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5", "3"}, balances)

	campaigns, err := table.Unique("campaign")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, campaigns)
}
