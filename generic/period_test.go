package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payperiod-ledger/generic"
)

func biweekly() generic.PayPeriodConfig {
	return generic.PayPeriodConfig{
		Anchor: generic.NewTimePoint(2024, time.May, 27),
		Length: generic.DefaultPayPeriodLength,
	}
}

func TestPayPeriod_FirstWindow(t *testing.T) {
	p := biweekly().First()

	assert.True(t, p.Start.Equal(generic.NewTimePoint(2024, time.May, 27)))
	assert.True(t, p.End.Equal(generic.NewTimePoint(2024, time.June, 9)))
	assert.Equal(t, 14, p.Length())
}

func TestPayPeriod_PeriodFor(t *testing.T) {
	cfg := biweekly()

	tests := []struct {
		name  string
		date  generic.TimePoint
		start generic.TimePoint
		end   generic.TimePoint
	}{
		{"anchor day", generic.NewTimePoint(2024, time.May, 27), generic.NewTimePoint(2024, time.May, 27), generic.NewTimePoint(2024, time.June, 9)},
		{"last day of first window", generic.NewTimePoint(2024, time.June, 9), generic.NewTimePoint(2024, time.May, 27), generic.NewTimePoint(2024, time.June, 9)},
		{"first day of second window", generic.NewTimePoint(2024, time.June, 10), generic.NewTimePoint(2024, time.June, 10), generic.NewTimePoint(2024, time.June, 23)},
		{"across a year", generic.NewTimePoint(2025, time.January, 1), generic.NewTimePoint(2024, time.December, 23), generic.NewTimePoint(2025, time.January, 5)},
		{"day before anchor", generic.NewTimePoint(2024, time.May, 26), generic.NewTimePoint(2024, time.May, 13), generic.NewTimePoint(2024, time.May, 26)},
		{"two windows before anchor", generic.NewTimePoint(2024, time.May, 1), generic.NewTimePoint(2024, time.April, 29), generic.NewTimePoint(2024, time.May, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := cfg.PeriodFor(tt.date)
			assert.Equal(t, tt.start.String(), p.Start.String())
			assert.Equal(t, tt.end.String(), p.End.String())
			assert.True(t, p.Contains(tt.date))
		})
	}
}

func TestPayPeriod_LengthInvariant(t *testing.T) {
	// end - start == length - 1 for any anchor/length/date
	anchors := []generic.TimePoint{
		generic.NewTimePoint(2024, time.May, 27),
		generic.NewTimePoint(2020, time.February, 29),
		generic.NewTimePoint(1999, time.December, 31),
	}
	for _, anchor := range anchors {
		for length := 1; length <= 31; length++ {
			cfg := generic.PayPeriodConfig{Anchor: anchor, Length: length}
			for _, offset := range []int{-400, -15, -1, 0, 1, 13, 14, 365, 1000} {
				p := cfg.PeriodFor(anchor.AddDays(offset))
				require.Equal(t, length-1, generic.DaysBetween(p.Start, p.End),
					"anchor %s length %d offset %d", anchor, length, offset)
				require.Len(t, p.Days(), length)
			}
		}
	}
}

func TestPayPeriod_Validate(t *testing.T) {
	assert.NoError(t, biweekly().Validate())

	err := generic.PayPeriodConfig{Length: 14}.Validate()
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)

	err = generic.PayPeriodConfig{Anchor: generic.NewTimePoint(2024, time.May, 27)}.Validate()
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

func TestPayPeriod_DistantAnchor(t *testing.T) {
	// GIVEN: An anchor eighteen centuries back, far past what a Duration holds
	cfg := generic.PayPeriodConfig{Anchor: generic.NewTimePoint(224, time.May, 27), Length: 14}
	today := generic.NewTimePoint(2026, time.October, 18)

	// WHEN: Finding the window for today
	p := cfg.PeriodFor(today)

	// THEN: The window still contains today and has the full length
	assert.True(t, p.Contains(today), "period %s", p)
	assert.Equal(t, "2026-10-15", p.Start.String())
	assert.Equal(t, 14, p.Length())
	assert.Equal(t, 658311, generic.DaysBetween(cfg.Anchor, today))
	assert.Equal(t, -658311, generic.DaysBetween(today, cfg.Anchor))
	assert.Equal(t, 730485, generic.DaysBetween(generic.NewTimePoint(1, time.January, 1), generic.NewTimePoint(2001, time.January, 1)))
}

func TestPayPeriod_ValidateAt(t *testing.T) {
	today := generic.NewTimePoint(2026, time.October, 18)

	assert.NoError(t, biweekly().ValidateAt(today))

	typo := generic.PayPeriodConfig{Anchor: generic.NewTimePoint(224, time.May, 27), Length: 14}
	assert.NoError(t, typo.Validate())
	assert.ErrorIs(t, typo.ValidateAt(today), generic.ErrInvalidPeriod)

	future := generic.PayPeriodConfig{Anchor: generic.NewTimePoint(2924, time.May, 27), Length: 14}
	assert.ErrorIs(t, future.ValidateAt(today), generic.ErrInvalidPeriod)

	// Missing anchor is still reported first
	assert.ErrorIs(t, generic.PayPeriodConfig{Length: 14}.ValidateAt(today), generic.ErrInvalidPeriod)
}

func TestPeriod_Shift(t *testing.T) {
	p := biweekly().First().Shift(-14)

	assert.Equal(t, "2024-05-13", p.Start.String())
	assert.Equal(t, "2024-05-26", p.End.String())
}

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("05/28/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-28", d.String())
	assert.Equal(t, "05/28/2024", d.USString())

	_, err = generic.ParseDate("2024-05-28")
	assert.Error(t, err)

	_, err = generic.ParseDate("13/01/2024")
	assert.Error(t, err)
}

func TestTimePoint_KeyIgnoresClockTime(t *testing.T) {
	morning := generic.TimePoint{Time: time.Date(2024, time.May, 28, 8, 30, 0, 0, time.UTC)}
	evening := generic.TimePoint{Time: time.Date(2024, time.May, 28, 22, 0, 0, 0, time.UTC)}

	assert.Equal(t, morning.Key(), evening.Key())
	assert.True(t, morning.Equal(evening))
}
