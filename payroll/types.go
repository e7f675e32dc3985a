/*
Package payroll tracks employee hours across recurring pay periods.

PURPOSE:
  Each employee has a recurring weekly schedule (the baseline) expanded into
  concrete days, plus ad-hoc adjustments layered on top. The Ledger owns the
  current pay-period window and every mutation of those hours.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee, WeeklyPattern: roster data, immutable once loaded
  - Direction: which way to move the pay-period window
  - Result, Transfer: what a mutation did, returned to the caller
  - DayEntry, EmployeeReport, PeriodReport: query results

SEE ALSO:
  - ledger.go: The Ledger and its mutations
  - schedule.go: Baseline generation
  - roster.go: Roster and the built-in default roster
  - report.go: Period queries
*/
package payroll

import (
	"time"

	"github.com/warp/payperiod-ledger/generic"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

type Employee struct {
	ID      generic.EntityID
	Name    string
	Pattern WeeklyPattern
}

// WeeklyPattern holds the baseline hours for each weekday, indexed by
// time.Weekday. A zero value is a day off.
type WeeklyPattern [7]generic.Amount

// Weekly builds a pattern from Monday-first hour values.
func Weekly(mon, tue, wed, thu, fri, sat, sun float64) WeeklyPattern {
	var p WeeklyPattern
	p[time.Monday] = generic.Hours(mon)
	p[time.Tuesday] = generic.Hours(tue)
	p[time.Wednesday] = generic.Hours(wed)
	p[time.Thursday] = generic.Hours(thu)
	p[time.Friday] = generic.Hours(fri)
	p[time.Saturday] = generic.Hours(sat)
	p[time.Sunday] = generic.Hours(sun)
	return p
}

// HoursOn returns the configured hours for a weekday.
func (p WeeklyPattern) HoursOn(d time.Weekday) generic.Amount {
	h := p[d]
	if h.Unit == "" {
		return generic.ZeroHours()
	}
	return h
}

// WeeklyTotal sums the seven weekdays.
func (p WeeklyPattern) WeeklyTotal() generic.Amount {
	total := generic.ZeroHours()
	for d := time.Sunday; d <= time.Saturday; d++ {
		total = total.Add(p.HoursOn(d))
	}
	return total
}

// =============================================================================
// PERIOD NAVIGATION
// =============================================================================

type Direction string

const (
	// Forward catches the window up to the period containing today.
	Forward Direction = "next"
	// Backward steps the window back one full period.
	Backward Direction = "previous"
)

// PeriodChange reports a window move.
type PeriodChange struct {
	From  generic.Period
	To    generic.Period
	Moved bool
}

// =============================================================================
// MUTATION RESULTS
// =============================================================================

type Operation string

const (
	OpAddHours     Operation = "add_hours"
	OpRemoveHours  Operation = "remove_hours"
	OpSwitchShifts Operation = "switch_shifts"
)

// Result describes the effects a mutation applied. It is populated even when
// the mutation also returns an error, because removals can consume added
// hours before failing on the baseline.
type Result struct {
	ID         string
	Operation  Operation
	EmployeeID generic.EntityID
	Date       generic.TimePoint
	Hours      generic.Amount

	// Removal breakdown
	FromAdjustment generic.Amount
	FromBaseline   generic.Amount

	// Shift switches
	Transfers []Transfer

	Message string
}

// Transfer is one leg of a shift switch: Hours move from one employee's
// Date to the other employee on the same Date.
type Transfer struct {
	From  generic.EntityID
	To    generic.EntityID
	Date  generic.TimePoint
	Hours generic.Amount
}

// =============================================================================
// QUERY RESULTS
// =============================================================================

// DayEntry is one reported day for one employee.
type DayEntry struct {
	Date       generic.TimePoint
	Baseline   generic.Amount
	Adjustment generic.Amount
}

// Total is baseline plus adjustment for the day.
func (d DayEntry) Total() generic.Amount { return d.Baseline.Add(d.Adjustment) }

type EmployeeReport struct {
	ID      generic.EntityID
	Name    string
	Entries []DayEntry
	Total   generic.Amount
}

// SummaryLine is one "name, total" row of the report summary.
type SummaryLine struct {
	Name  string
	Total generic.Amount
}

type PeriodReport struct {
	Period     generic.Period
	Employees  []EmployeeReport
	Summary    []SummaryLine
	GrandTotal generic.Amount
}
