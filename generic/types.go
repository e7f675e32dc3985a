/*
Package generic provides the domain-agnostic primitives of the hours ledger.

PURPOSE:
  Quantities, calendar days, pay-period windows and the two-layer balance
  used by the payroll package. Nothing in here knows about employees or
  rosters; the payroll package layers those on top.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 6 hours)
  - EntityID: Type-safe identifier of whoever owns a balance
  - Layer: Which side of a two-layer balance an entry belongs to

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Type Safety: Strong typing for IDs and layers

USAGE:
  six := generic.NewAmount(6, generic.UnitHours)
  total := six.Add(generic.NewAmount(2.5, generic.UnitHours))

SEE ALSO:
  - time.go: TimePoint, calendar helpers
  - period.go: Period and pay-period windowing
  - balance.go: Two-layer draw-down
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const UnitHours Unit = "hours"

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromDecimal(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

// Hours is shorthand for NewAmount(value, UnitHours).
func Hours(value float64) Amount { return NewAmount(value, UnitHours) }

// ZeroHours is the additive identity for hour amounts.
func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }
func (a Amount) GreaterOrEqual(b Amount) bool { return a.Value.GreaterThanOrEqual(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

// String renders the bare value, e.g. "6" or "2.5".
func (a Amount) String() string { return a.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EntityID string

// Layer names one side of a two-layer balance.
type Layer string

const (
	// LayerBaseline holds hours generated from a recurring template.
	LayerBaseline Layer = "baseline"
	// LayerAdjustment holds hours added on top of the template.
	LayerAdjustment Layer = "adjustment"
)
