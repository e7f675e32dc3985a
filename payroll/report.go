package payroll

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/warp/payperiod-ledger/generic"
)

// Employees returns the roster in order.
func (l *Ledger) Employees() ([]Employee, error) {
	if err := l.usable(); err != nil {
		return nil, err
	}
	return l.roster.Employees(), nil
}

// Employee looks up one roster entry.
func (l *Ledger) Employee(id generic.EntityID) (Employee, error) {
	if err := l.usable(); err != nil {
		return Employee{}, err
	}
	e, ok := l.roster.Lookup(id)
	if !ok {
		return Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	return e, nil
}

// WorkHours returns the baseline hours of a day, zero when absent.
func (l *Ledger) WorkHours(ctx context.Context, id generic.EntityID, date generic.TimePoint) (generic.Amount, error) {
	if err := l.usable(); err != nil {
		return generic.Amount{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	h, _, err := l.store.Get(ctx, id, generic.LayerBaseline, date)
	return h, err
}

// IsWorkday is true when the baseline holds positive hours for the day.
func (l *Ledger) IsWorkday(ctx context.Context, id generic.EntityID, date generic.TimePoint) (bool, error) {
	h, err := l.WorkHours(ctx, id, date)
	if err != nil {
		return false, err
	}
	return h.IsPositive(), nil
}

// Adjustment returns the accumulated added hours of a day.
func (l *Ledger) Adjustment(ctx context.Context, id generic.EntityID, date generic.TimePoint) (generic.Amount, error) {
	if err := l.usable(); err != nil {
		return generic.Amount{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	h, _, err := l.store.Get(ctx, id, generic.LayerAdjustment, date)
	return h, err
}

// TotalHours sums baseline and adjustment over every day of period.
func (l *Ledger) TotalHours(ctx context.Context, id generic.EntityID, period generic.Period) (generic.Amount, error) {
	if err := l.usable(); err != nil {
		return generic.Amount{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.dayEntries(ctx, id, period)
	if err != nil {
		return generic.Amount{}, err
	}
	return sumEntries(entries), nil
}

// Report builds the current period report for every employee on the roster.
func (l *Ledger) Report(ctx context.Context) (PeriodReport, error) {
	if err := l.usable(); err != nil {
		return PeriodReport{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	report := PeriodReport{
		Period:     l.current,
		GrandTotal: generic.ZeroHours(),
	}
	for _, e := range l.roster.employees {
		entries, err := l.dayEntries(ctx, e.ID, l.current)
		if err != nil {
			return PeriodReport{}, fmt.Errorf("report for %s: %w", e.ID, err)
		}
		total := sumEntries(entries)
		report.Employees = append(report.Employees, EmployeeReport{
			ID:      e.ID,
			Name:    e.Name,
			Entries: entries,
			Total:   total,
		})
		report.Summary = append(report.Summary, SummaryLine{Name: e.Name, Total: total})
		report.GrandTotal = report.GrandTotal.Add(total)
	}
	return report, nil
}

// EmployeeReport builds the current period report for one employee.
func (l *Ledger) EmployeeReport(ctx context.Context, id generic.EntityID) (EmployeeReport, error) {
	e, err := l.Employee(id)
	if err != nil {
		return EmployeeReport{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.dayEntries(ctx, id, l.current)
	if err != nil {
		return EmployeeReport{}, err
	}
	return EmployeeReport{ID: e.ID, Name: e.Name, Entries: entries, Total: sumEntries(entries)}, nil
}

// dayEntries merges both layers over period, keeping days where either
// layer is positive, sorted by date.
func (l *Ledger) dayEntries(ctx context.Context, id generic.EntityID, period generic.Period) ([]DayEntry, error) {
	baseline, err := l.store.LoadRange(ctx, id, generic.LayerBaseline, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	adjustments, err := l.store.LoadRange(ctx, id, generic.LayerAdjustment, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*DayEntry)
	get := func(day generic.TimePoint) *DayEntry {
		d, ok := byDay[day.Key()]
		if !ok {
			d = &DayEntry{Date: day, Baseline: generic.ZeroHours(), Adjustment: generic.ZeroHours()}
			byDay[day.Key()] = d
		}
		return d
	}
	for _, e := range baseline {
		if e.Hours.IsPositive() {
			get(e.Day).Baseline = e.Hours
		}
	}
	for _, e := range adjustments {
		if e.Hours.IsPositive() {
			get(e.Day).Adjustment = e.Hours
		}
	}

	entries := make([]DayEntry, 0, len(byDay))
	for _, d := range byDay {
		entries = append(entries, *d)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func sumEntries(entries []DayEntry) generic.Amount {
	total := generic.ZeroHours()
	for _, d := range entries {
		total = total.Add(d.Total())
	}
	return total
}

// WriteText renders the report in the plain text payroll format: one block
// per employee, a name/total summary, then the period line.
func (r PeriodReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range r.Employees {
		fmt.Fprintf(bw, "Employee ID: %s, Name: %s\n", e.ID, e.Name)
		for _, d := range e.Entries {
			if d.Baseline.IsPositive() {
				fmt.Fprintf(bw, "    Date: %s, Preset Hours: %s\n", d.Date.USString(), d.Baseline)
			}
			if d.Adjustment.IsPositive() {
				fmt.Fprintf(bw, "    Date: %s, Added Hours: %s\n", d.Date.USString(), d.Adjustment)
			}
		}
		fmt.Fprintf(bw, "    Total Hours Worked: %s\n\n", e.Total)
	}

	fmt.Fprintln(bw, "Hours Worked Summary:")
	for _, s := range r.Summary {
		fmt.Fprintf(bw, "%s, %s\n", s.Name, s.Total)
	}
	fmt.Fprintf(bw, "%s - %s\n", r.Period.Start.USString(), r.Period.End.USString())
	return bw.Flush()
}
