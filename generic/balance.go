/*
balance.go - Two-layer balance and draw-down order

PURPOSE:
  A day's hours live in two layers: a baseline generated from a recurring
  template and an adjustment accumulated on top of it. Adds only ever touch
  the adjustment layer. Removals draw the adjustment down first and fall back
  to the baseline for the remainder.

DRAW-DOWN ORDER:
  1. adjustment >= requested:
       adjustment -= requested. Baseline untouched. Done.
  2. adjustment < requested:
       remaining = requested - adjustment
       the whole adjustment is consumed
       baseline <= 0          -> ErrNoPresetHours, baseline untouched
       baseline >= remaining  -> baseline -= remaining
       baseline <  remaining  -> InsufficientBalanceError, baseline untouched

  The adjustment consumed in step 2 stays consumed when the baseline step
  fails. Withdraw returns the post-withdrawal balance in every case, so the
  caller persists the partial effect and reports the error.

EXAMPLE:
  Balance{Adjustment: 2h, Baseline: 6h}.Withdraw(5h)
    -> Balance{Adjustment: 0h, Baseline: 3h}, FromAdjustment 2h, FromBaseline 3h

  Balance{Adjustment: 2h, Baseline: 6h}.Withdraw(10h)
    -> Balance{Adjustment: 0h, Baseline: 6h}, FromAdjustment 2h,
       InsufficientBalanceError{Available: 8h, Requested: 10h, Shortfall: 2h}

SEE ALSO:
  - payroll/ledger.go: Applies withdrawals to the store
*/
package generic

// Balance is one day's hours for one entity.
type Balance struct {
	Baseline   Amount
	Adjustment Amount
}

// Withdrawal records where withdrawn hours came from.
type Withdrawal struct {
	Requested      Amount
	FromAdjustment Amount
	FromBaseline   Amount
}

// Withdraw applies the draw-down order to b. The returned balance reflects
// everything that was applied, including the adjustment consumed before a
// baseline failure.
func (b Balance) Withdraw(requested Amount) (Balance, Withdrawal, error) {
	w := Withdrawal{
		Requested:      requested,
		FromAdjustment: requested.Zero(),
		FromBaseline:   requested.Zero(),
	}
	if !requested.IsPositive() {
		return b, w, ErrInvalidAmount
	}

	added := b.Adjustment
	if added.IsNegative() {
		added = added.Zero()
	}

	if added.GreaterOrEqual(requested) {
		b.Adjustment = b.Adjustment.Sub(requested)
		w.FromAdjustment = requested
		return b, w, nil
	}

	remaining := requested.Sub(added)
	if added.IsPositive() {
		w.FromAdjustment = added
		b.Adjustment = added.Zero()
	}

	if !b.Baseline.IsPositive() {
		return b, w, ErrNoPresetHours
	}
	if b.Baseline.LessThan(remaining) {
		return b, w, &InsufficientBalanceError{
			Available: b.Baseline.Add(added),
			Requested: requested,
			Shortfall: remaining.Sub(b.Baseline),
		}
	}

	b.Baseline = b.Baseline.Sub(remaining)
	w.FromBaseline = remaining
	return b, w, nil
}
