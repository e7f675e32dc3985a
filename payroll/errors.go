package payroll

import (
	"errors"
	"fmt"

	"github.com/warp/payperiod-ledger/generic"
)

var (
	// ErrEmployeeNotFound is returned when an operation names an employee
	// that is not on the roster. It matches generic.ErrEntityNotFound.
	ErrEmployeeNotFound = fmt.Errorf("employee %w", generic.ErrEntityNotFound)

	// ErrNoShiftToSwitch is returned when either side of a shift switch has
	// no baseline hours on its date.
	ErrNoShiftToSwitch = errors.New("cannot switch shifts: one or both employees do not have hours on the specified dates")

	// ErrOutsidePeriod is returned when a shift switch names a date outside
	// the current pay period.
	ErrOutsidePeriod = errors.New("dates are not within the current pay period")

	// ErrLedgerUnavailable is returned by every method of a ledger whose
	// construction failed.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrDuplicateEmployee is returned when a roster repeats an ID.
	ErrDuplicateEmployee = errors.New("duplicate employee id")

	// ErrEmptyRoster is returned when a ledger is built without employees.
	ErrEmptyRoster = errors.New("roster has no employees")
)

// IsClientError extends generic.IsClientError with payroll rules.
func IsClientError(err error) bool {
	return generic.IsClientError(err) ||
		errors.Is(err, ErrNoShiftToSwitch) ||
		errors.Is(err, ErrOutsidePeriod)
}
