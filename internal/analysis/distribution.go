package analysis

import (
	"fmt"
	"sort"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/go-gota/gota/series"
)

// OutcomeDistribution computes the percentage share of each distinct value of
// column. Missing values are not counted. The result is ordered by the natural
// order of the column type and is empty when there is nothing to count.
func OutcomeDistribution(table *dataset.Table, column string) (dataset.OutcomeDistribution, error) {
	dist := dataset.OutcomeDistribution{Column: column, Shares: []dataset.OutcomeShare{}}
	if table == nil {
		return dist, nil
	}

	s, err := table.Column(column)
	if err != nil {
		return dist, errors.ValidationError(fmt.Sprintf("outcome column %q is not in the table", column))
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]series.Element)
	keys := make([]string, 0)
	for i := 0; i < s.Len(); i++ {
		elem := s.Elem(i)
		if elem.IsNA() {
			continue
		}
		key := dataset.CellString(elem)
		if _, ok := counts[key]; !ok {
			keys = append(keys, key)
			firstSeen[key] = elem
		}
		counts[key]++
		dist.Total++
	}
	if dist.Total == 0 {
		return dist, nil
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return naturalLess(s.Type(), firstSeen[keys[i]], firstSeen[keys[j]])
	})

	for _, key := range keys {
		dist.Shares = append(dist.Shares, dataset.OutcomeShare{
			Value:   key,
			Count:   counts[key],
			Percent: 100 * float64(counts[key]) / float64(dist.Total),
		})
	}
	return dist, nil
}

func naturalLess(t series.Type, a, b series.Element) bool {
	switch t {
	case series.Int, series.Float:
		return a.Float() < b.Float()
	case series.Bool:
		av, _ := a.Bool()
		bv, _ := b.Bool()
		return !av && bv
	default:
		return a.String() < b.String()
	}
}
