package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/generic/store"
)

func day(d int) generic.TimePoint {
	return generic.NewTimePoint(2024, time.June, d)
}

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, ok, err := m.Get(ctx, "1", generic.LayerAdjustment, day(3))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, generic.Entry{EntityID: "1", Layer: generic.LayerAdjustment, Day: day(3), Hours: generic.Hours(3)}))

	h, ok, err := m.Get(ctx, "1", generic.LayerAdjustment, day(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", h.String())

	// Other layer and other entity are independent
	_, ok, _ = m.Get(ctx, "1", generic.LayerBaseline, day(3))
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "2", generic.LayerAdjustment, day(3))
	assert.False(t, ok)

	require.NoError(t, m.Delete(ctx, "1", generic.LayerAdjustment, day(3)))
	_, ok, _ = m.Get(ctx, "1", generic.LayerAdjustment, day(3))
	assert.False(t, ok)

	// Deleting again is fine
	assert.NoError(t, m.Delete(ctx, "1", generic.LayerAdjustment, day(3)))
}

func TestMemory_PutBatchKeepsExisting(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.Put(ctx, generic.Entry{EntityID: "1", Layer: generic.LayerBaseline, Day: day(3), Hours: generic.Hours(2)}))
	require.NoError(t, m.PutBatch(ctx, []generic.Entry{
		{EntityID: "1", Layer: generic.LayerBaseline, Day: day(3), Hours: generic.Hours(6)},
		{EntityID: "1", Layer: generic.LayerBaseline, Day: day(4), Hours: generic.Hours(6)},
	}))

	h, _, _ := m.Get(ctx, "1", generic.LayerBaseline, day(3))
	assert.Equal(t, "2", h.String(), "existing entry must not be overwritten")
	h, _, _ = m.Get(ctx, "1", generic.LayerBaseline, day(4))
	assert.Equal(t, "6", h.String())
}

func TestMemory_LoadRangeOrderedAndBounded(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	for _, d := range []int{9, 1, 5, 3, 12} {
		require.NoError(t, m.Put(ctx, generic.Entry{EntityID: "1", Layer: generic.LayerAdjustment, Day: day(d), Hours: generic.Hours(float64(d))}))
	}

	entries, err := m.LoadRange(ctx, "1", generic.LayerAdjustment, day(3), day(9))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-06-03", entries[0].Day.String())
	assert.Equal(t, "2024-06-05", entries[1].Day.String())
	assert.Equal(t, "2024-06-09", entries[2].Day.String())
}
