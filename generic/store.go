/*
store.go - Persistence interface for layered day balances

PURPOSE:
  Defines the interface between the ledger logic and wherever the hours
  are kept. Entries are keyed by (entity, layer, day). The ledger decides
  when an entry is written or deleted; the store just keeps what it is told.

SPARSENESS:
  The ledger deletes adjustment entries that reach zero or below, and
  baseline entries consumed down to zero. Get on a missing key returns
  (zero, false, nil), never an error.

IMPLEMENTATIONS:
  - generic/store/memory.go: In-memory, the only backing this system needs

EXAMPLE:
  st := store.NewMemory()
  err := st.Put(ctx, generic.Entry{
      EntityID: "1", Layer: generic.LayerAdjustment,
      Day: day, Hours: generic.Hours(3),
  })
  hours, ok, err := st.Get(ctx, "1", generic.LayerAdjustment, day)

SEE ALSO:
  - balance.go: Two-layer draw-down
  - payroll/ledger.go: The only writer
*/
package generic

import "context"

// Entry is one stored day value.
type Entry struct {
	EntityID EntityID
	Layer    Layer
	Day      TimePoint
	Hours    Amount
}

// Store keeps layered day entries.
type Store interface {
	// Get returns the entry's hours and whether it exists.
	Get(ctx context.Context, entityID EntityID, layer Layer, day TimePoint) (Amount, bool, error)

	// Put writes or overwrites an entry.
	Put(ctx context.Context, e Entry) error

	// PutBatch writes entries that do not exist yet and leaves existing ones
	// untouched. Used to extend generated layers without clobbering edits.
	PutBatch(ctx context.Context, entries []Entry) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, entityID EntityID, layer Layer, day TimePoint) error

	// LoadRange returns entries in [from, to], ordered by day.
	LoadRange(ctx context.Context, entityID EntityID, layer Layer, from, to TimePoint) ([]Entry, error)
}

// BalanceOf reads both layers of one day.
func BalanceOf(ctx context.Context, s Store, entityID EntityID, day TimePoint) (Balance, error) {
	baseline, _, err := s.Get(ctx, entityID, LayerBaseline, day)
	if err != nil {
		return Balance{}, err
	}
	adjustment, _, err := s.Get(ctx, entityID, LayerAdjustment, day)
	if err != nil {
		return Balance{}, err
	}
	return Balance{Baseline: baseline, Adjustment: adjustment}, nil
}
