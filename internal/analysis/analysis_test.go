package analysis

import (
	"fmt"
	"testing"

	"telemarketing/domain/dataset"

	"github.com/stretchr/testify/require"
)

// bankTable returns 10 rows: 5 married, 3 accepting (y == "yes").
func bankTable(t *testing.T) *dataset.Table {
	t.Helper()

	jobs := []string{"admin.", "technician", "admin.", "services", "admin.", "technician", "retired", "admin.", "services", "retired"}
	marital := []string{"married", "single", "married", "divorced", "married", "married", "single", "married", "single", "divorced"}
	outcome := []string{"yes", "no", "no", "yes", "no", "no", "yes", "no", "no", "no"}

	records := [][]string{{"age", "job", "marital", "y"}}
	for i := range jobs {
		records = append(records, []string{fmt.Sprintf("%d", 25+i*3), jobs[i], marital[i], outcome[i]})
	}

	table, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return table
}
