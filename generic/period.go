package generic

import "fmt"

// =============================================================================
// PERIOD - Inclusive day window
// =============================================================================

// Period is an inclusive window of calendar days [Start, End].
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Length is the number of days in the period, both ends included.
func (p Period) Length() int {
	return DaysBetween(p.Start, p.End) + 1
}

// Shift moves both bounds by n days.
func (p Period) Shift(n int) Period {
	return Period{Start: p.Start.AddDays(n), End: p.End.AddDays(n)}
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// PAY PERIOD CONFIG - Fixed-length windows counted from an anchor day
// =============================================================================

// DefaultPayPeriodLength is the biweekly pay cycle.
const DefaultPayPeriodLength = 14

// PayPeriodConfig slices the calendar into consecutive windows of Length days,
// the first one starting on Anchor. Windows extend in both directions.
type PayPeriodConfig struct {
	Anchor TimePoint
	Length int
}

// Validate reports a config that cannot produce windows.
func (pc PayPeriodConfig) Validate() error {
	if pc.Anchor.IsZero() {
		return fmt.Errorf("%w: anchor date is required", ErrInvalidPeriod)
	}
	if pc.Length < 1 {
		return fmt.Errorf("%w: length must be at least 1 day, got %d", ErrInvalidPeriod, pc.Length)
	}
	return nil
}

// MaxAnchorDistance bounds how far the anchor may lie from today, in days.
// The baseline is generated from the anchor onward, so a mistyped year would
// otherwise expand centuries of schedule.
const MaxAnchorDistance = 100 * 366

// ValidateAt is Validate plus a bound on the distance between the anchor and
// today.
func (pc PayPeriodConfig) ValidateAt(today TimePoint) error {
	if err := pc.Validate(); err != nil {
		return err
	}
	if d := DaysBetween(pc.Anchor, today); d > MaxAnchorDistance || d < -MaxAnchorDistance {
		return fmt.Errorf("%w: anchor %s is %d days from today, at most %d allowed",
			ErrInvalidPeriod, pc.Anchor.USString(), d, MaxAnchorDistance)
	}
	return nil
}

// Index returns the window number containing date. Window 0 starts on the
// anchor; days before the anchor fall in negative windows.
func (pc PayPeriodConfig) Index(date TimePoint) int {
	return floorDiv(DaysBetween(pc.Anchor, date), pc.Length)
}

// PeriodFor returns the window that contains date.
func (pc PayPeriodConfig) PeriodFor(date TimePoint) Period {
	start := pc.Anchor.AddDays(pc.Index(date) * pc.Length)
	return Period{Start: start, End: start.AddDays(pc.Length - 1)}
}

// First is window 0.
func (pc PayPeriodConfig) First() Period {
	return pc.PeriodFor(pc.Anchor)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
