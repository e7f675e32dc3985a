/*
Package factory converts roster configuration files into payroll rosters.

PURPOSE:
  The employee list is static configuration, loaded once at startup and
  handed to the ledger. Keeping it in a file lets the store manager change
  who works which weekday without a rebuild.

FORMAT (YAML; JSON is accepted since it is a YAML subset):
  employees:
    - id: "1"
      name: John G
      hours:
        monday: 6
        wednesday: 6
    - id: "2"
      name: Cole B
      hours: {fri: 6}

  Weekdays omitted from `hours` are days off. Keys are full weekday names or
  their three-letter forms, case-insensitive.

VALIDATION:
  - id is required and unique
  - unknown weekday keys are rejected
  - negative hours are rejected

USAGE:
  f := factory.NewRosterFactory()
  roster, err := f.LoadRoster("roster.yaml")

  // Dump a roster back to YAML
  data, err := f.MarshalRoster(payroll.DefaultRoster())

SEE ALSO:
  - payroll/roster.go: Roster type and the built-in default roster
  - config/config.go: PAYROLL_ROSTER
*/
package factory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

// =============================================================================
// FILE SCHEMA TYPES
// =============================================================================

// RosterJSON is the file representation of a roster.
type RosterJSON struct {
	Employees []EmployeeJSON `yaml:"employees" json:"employees"`
}

// EmployeeJSON is one roster entry.
type EmployeeJSON struct {
	ID    string             `yaml:"id" json:"id"`
	Name  string             `yaml:"name" json:"name"`
	Hours map[string]float64 `yaml:"hours,omitempty" json:"hours,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// =============================================================================
// ROSTER FACTORY
// =============================================================================

// RosterFactory converts roster files to payroll rosters.
type RosterFactory struct{}

// NewRosterFactory creates a new roster factory.
func NewRosterFactory() *RosterFactory {
	return &RosterFactory{}
}

// LoadRoster reads and parses a roster file.
func (f *RosterFactory) LoadRoster(path string) (*payroll.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return f.ParseRoster(data)
}

// ParseRoster parses YAML or JSON roster data.
func (f *RosterFactory) ParseRoster(data []byte) (*payroll.Roster, error) {
	var rj RosterJSON
	if err := yaml.Unmarshal(data, &rj); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON converts the file representation into a validated roster.
func (f *RosterFactory) FromJSON(rj RosterJSON) (*payroll.Roster, error) {
	employees := make([]payroll.Employee, 0, len(rj.Employees))
	for i, ej := range rj.Employees {
		pattern, err := parsePattern(ej.Hours)
		if err != nil {
			return nil, fmt.Errorf("employee #%d (%s): %w", i+1, ej.ID, err)
		}
		employees = append(employees, payroll.Employee{
			ID:      generic.EntityID(strings.TrimSpace(ej.ID)),
			Name:    ej.Name,
			Pattern: pattern,
		})
	}
	return payroll.NewRoster(employees...)
}

// MarshalRoster renders a roster in the file format. Days off are omitted.
func (f *RosterFactory) MarshalRoster(r *payroll.Roster) ([]byte, error) {
	var rj RosterJSON
	for _, e := range r.Employees() {
		ej := EmployeeJSON{ID: string(e.ID), Name: e.Name}
		for d := time.Sunday; d <= time.Saturday; d++ {
			h := e.Pattern.HoursOn(d)
			if !h.IsPositive() {
				continue
			}
			if ej.Hours == nil {
				ej.Hours = make(map[string]float64)
			}
			ej.Hours[strings.ToLower(d.String())] = h.Value.InexactFloat64()
		}
		rj.Employees = append(rj.Employees, ej)
	}
	return yaml.Marshal(rj)
}

func parsePattern(hours map[string]float64) (payroll.WeeklyPattern, error) {
	var p payroll.WeeklyPattern
	for d := time.Sunday; d <= time.Saturday; d++ {
		p[d] = generic.ZeroHours()
	}
	for name, h := range hours {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return p, fmt.Errorf("unknown weekday %q", name)
		}
		if h < 0 {
			return p, fmt.Errorf("negative hours on %s: %v", d, h)
		}
		p[d] = generic.Hours(h)
	}
	return p, nil
}
