/*
errors.go - Centralized error types for the generic engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The payroll package wraps these errors with additional context.

ERROR CATEGORIES:
  1. Lookup errors - Missing entities
  2. Balance errors - Withdrawals the layers cannot cover
  3. Input errors - Malformed quantities or periods

USAGE:
    if errors.Is(err, generic.ErrInsufficientBalance) {
        var short *generic.InsufficientBalanceError
        errors.As(err, &short)
        ...
    }

SEE ALSO:
  - balance.go: Produces the balance errors
  - payroll/errors.go: Domain errors built on these
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientBalance is returned when a withdrawal exceeds what both
	// layers hold.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNoPresetHours is returned when a withdrawal has to fall back to the
	// baseline layer but the baseline holds nothing for that day.
	ErrNoPresetHours = errors.New("no preset hours")

	// ErrEntityNotFound is returned when a referenced entity doesn't exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvalidAmount is returned for quantities that make no sense for the
	// operation (e.g. removing zero or negative hours).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidPeriod is returned when a period configuration is malformed.
	ErrInvalidPeriod = errors.New("invalid period")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	EntityID  EntityID
	Day       TimePoint
	Available Amount
	Requested Amount
	Shortfall Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("cannot remove %v hours: only %v hours available for %s (short by %v)",
		e.Requested.Value, e.Available.Value, e.Day.USString(), e.Shortfall.Value)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input or a
// request the current balances cannot satisfy.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrNoPresetHours) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}
