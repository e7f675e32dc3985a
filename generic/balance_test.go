package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payperiod-ledger/generic"
)

func hours(v float64) generic.Amount { return generic.Hours(v) }

func assertHours(t *testing.T, want float64, got generic.Amount, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, hours(want).Equal(got), append([]any{"want %v got %v", want, got}, msgAndArgs...)...)
}

func TestWithdraw_CoveredByAdjustment(t *testing.T) {
	// GIVEN: 3 added hours on top of a 6 hour baseline
	// WHEN: Removing 2
	// THEN: Only the adjustment shrinks
	b := generic.Balance{Baseline: hours(6), Adjustment: hours(3)}

	after, w, err := b.Withdraw(hours(2))

	require.NoError(t, err)
	assertHours(t, 1, after.Adjustment)
	assertHours(t, 6, after.Baseline)
	assertHours(t, 2, w.FromAdjustment)
	assertHours(t, 0, w.FromBaseline)
}

func TestWithdraw_ExactAdjustment(t *testing.T) {
	b := generic.Balance{Baseline: hours(6), Adjustment: hours(3)}

	after, _, err := b.Withdraw(hours(3))

	require.NoError(t, err)
	assert.True(t, after.Adjustment.IsZero())
	assertHours(t, 6, after.Baseline)
}

func TestWithdraw_FallsBackToBaseline(t *testing.T) {
	// GIVEN: 2 added hours, 6 baseline
	// WHEN: Removing 5
	// THEN: Adjustment is emptied, baseline pays the remaining 3
	b := generic.Balance{Baseline: hours(6), Adjustment: hours(2)}

	after, w, err := b.Withdraw(hours(5))

	require.NoError(t, err)
	assert.True(t, after.Adjustment.IsZero())
	assertHours(t, 3, after.Baseline)
	assertHours(t, 2, w.FromAdjustment)
	assertHours(t, 3, w.FromBaseline)
}

func TestWithdraw_BaselineShortfallKeepsAdjustmentConsumed(t *testing.T) {
	// GIVEN: 2 added hours, 6 baseline
	// WHEN: Removing 10
	// THEN: Shortfall of 2 is reported, baseline untouched, adjustment still consumed
	b := generic.Balance{Baseline: hours(6), Adjustment: hours(2)}

	after, w, err := b.Withdraw(hours(10))

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInsufficientBalance)
	var short *generic.InsufficientBalanceError
	require.ErrorAs(t, err, &short)
	assertHours(t, 8, short.Available)
	assertHours(t, 10, short.Requested)
	assertHours(t, 2, short.Shortfall)

	assert.True(t, after.Adjustment.IsZero(), "adjustment consumed before the baseline check")
	assertHours(t, 6, after.Baseline)
	assertHours(t, 2, w.FromAdjustment)
	assertHours(t, 0, w.FromBaseline)
}

func TestWithdraw_NoPresetHours(t *testing.T) {
	b := generic.Balance{Baseline: hours(0), Adjustment: hours(1)}

	after, w, err := b.Withdraw(hours(4))

	assert.ErrorIs(t, err, generic.ErrNoPresetHours)
	assert.True(t, after.Adjustment.IsZero())
	assertHours(t, 1, w.FromAdjustment)
}

func TestWithdraw_RejectsNonPositive(t *testing.T) {
	b := generic.Balance{Baseline: hours(6), Adjustment: hours(1)}

	for _, h := range []float64{0, -2} {
		after, _, err := b.Withdraw(hours(h))
		assert.ErrorIs(t, err, generic.ErrInvalidAmount)
		assert.Equal(t, b, after)
	}
}

func TestWithdraw_DecimalPrecision(t *testing.T) {
	b := generic.Balance{Baseline: hours(0), Adjustment: hours(0.1).Add(hours(0.2))}

	after, _, err := b.Withdraw(hours(0.3))

	require.NoError(t, err)
	assert.True(t, after.Adjustment.IsZero())
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, generic.IsClientError(generic.ErrNoPresetHours))
	assert.True(t, generic.IsClientError(&generic.InsufficientBalanceError{}))
	assert.False(t, generic.IsClientError(generic.ErrEntityNotFound))
	assert.True(t, generic.IsNotFound(generic.ErrEntityNotFound))
}
