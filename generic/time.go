package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME POINT - Calendar day abstraction
// =============================================================================

// TimePoint is a calendar day. The time-of-day part is always ignored, so two
// TimePoints built from different instants of the same day compare equal and
// can be used as map keys through Key().
type TimePoint struct {
	Time time.Time
}

// DateLayoutUS is the month/day/year layout used at the presentation boundary.
const DateLayoutUS = "01/02/2006"

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar day in t's own location.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

func Today() TimePoint {
	return FromTime(time.Now())
}

// ParseDate parses a MM/DD/YYYY date.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayoutUS, s)
	if err != nil {
		return TimePoint{}, fmt.Errorf("invalid date %q, use MM/DD/YYYY: %w", s, err)
	}
	return FromTime(t), nil
}

// Clock returns the current calendar day. Injected wherever "today" matters.
type Clock func() TimePoint

// FixedClock always reports the same day.
func FixedClock(day TimePoint) Clock {
	return func() TimePoint { return day }
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Key is a comparable day key, stable across locations and clock times.
func (tp TimePoint) Key() time.Time { return tp.normalize() }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.normalize().AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.normalize().Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.normalize().Format("2006-01-02") }

// USString formats the day as MM/DD/YYYY.
func (tp TimePoint) USString() string { return tp.normalize().Format(DateLayoutUS) }

// =============================================================================
// TIME UTILITIES
// =============================================================================

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the signed number of whole days from `from` to `to`.
func DaysBetween(from, to TimePoint) int {
	// Unix seconds rather than Sub: a Duration saturates at about 292 years.
	return int((to.normalize().Unix() - from.normalize().Unix()) / secondsPerDay)
}
