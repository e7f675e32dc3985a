package payroll

import "github.com/warp/payperiod-ledger/generic"

// BaselineDay is one generated day of a baseline schedule.
type BaselineDay struct {
	Date  generic.TimePoint
	Hours generic.Amount
}

// GenerateBaseline expands a weekly pattern over [from, to]. Every day in
// range gets an entry, days off included with zero hours, so callers must
// test Hours > 0 to tell a workday.
func GenerateBaseline(pattern WeeklyPattern, from, to generic.TimePoint) []BaselineDay {
	if to.Before(from) {
		return nil
	}
	dates := generic.Period{Start: from, End: to}.Days()
	days := make([]BaselineDay, len(dates))
	for i, d := range dates {
		days[i] = BaselineDay{Date: d, Hours: pattern.HoursOn(d.Weekday())}
	}
	return days
}

func baselineEntries(e Employee, from, to generic.TimePoint) []generic.Entry {
	days := GenerateBaseline(e.Pattern, from, to)
	entries := make([]generic.Entry, len(days))
	for i, d := range days {
		entries[i] = generic.Entry{
			EntityID: e.ID,
			Layer:    generic.LayerBaseline,
			Day:      d.Date,
			Hours:    d.Hours,
		}
	}
	return entries
}
