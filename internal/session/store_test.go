package session

import (
	"context"
	"testing"
	"time"

	"telemarketing/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(ttl)
	store.now = clock.Now
	return store, clock
}

func TestStoreGetOrCreate(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	sess, created := store.GetOrCreate("")
	assert.True(t, created)

	again, created := store.GetOrCreate(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)

	_, ok := store.Get("not-a-uuid")
	assert.False(t, ok)
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	stale := store.Create()
	clock.t = clock.t.Add(30 * time.Minute)
	fresh := store.Create()

	clock.t = clock.t.Add(45 * time.Minute)
	_, ok := store.Get(stale.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)

	clock.t = clock.t.Add(2 * time.Hour)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestSessionCachesRawDistribution(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess := store.Create()
	assert.False(t, sess.HasData())

	table, err := dataset.FromRecords([][]string{{"y"}, {"yes"}, {"no"}})
	require.NoError(t, err)
	sess.SetData("bank.csv", table)
	sess.SetFilters(dataset.FilterSpec{"y": {"yes"}})

	calls := 0
	compute := func(*dataset.Table) (dataset.OutcomeDistribution, error) {
		calls++
		return dataset.OutcomeDistribution{Column: "y", Total: 2}, nil
	}

	_, err = sess.RawDistribution(table, compute)
	require.NoError(t, err)
	_, err = sess.RawDistribution(table, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	sess.SetData("other.csv", table)
	assert.Nil(t, sess.Filters(), "a new upload resets the filters")
	_, err = sess.RawDistribution(table, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	filename, raw := sess.Data()
	assert.Equal(t, "other.csv", filename)
	assert.Same(t, table, raw)
}

func TestRawDistributionIgnoresReplacedTable(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess := store.Create()

	old, err := dataset.FromRecords([][]string{{"y"}, {"yes"}, {"no"}})
	require.NoError(t, err)
	current, err := dataset.FromRecords([][]string{{"y"}, {"no"}, {"no"}, {"no"}})
	require.NoError(t, err)
	sess.SetData("current.csv", current)

	var seen []*dataset.Table
	compute := func(table *dataset.Table) (dataset.OutcomeDistribution, error) {
		seen = append(seen, table)
		return dataset.OutcomeDistribution{Column: "y", Total: table.Len()}, nil
	}

	// a render that snapshotted the table before an upload replaced it
	dist, err := sess.RawDistribution(old, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, dist.Total)

	dist, err = sess.RawDistribution(current, compute)
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Total, "the stale table must not be cached for the current one")

	dist, err = sess.RawDistribution(current, compute)
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Total)
	require.Len(t, seen, 2)
	assert.Same(t, old, seen[0])
	assert.Same(t, current, seen[1])
}

func TestStartSweeperClampsInterval(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NotPanics(t, func() { store.StartSweeper(ctx, 0) })
	assert.NotPanics(t, func() { store.StartSweeper(ctx, time.Nanosecond) })
}
