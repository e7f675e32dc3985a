package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/payperiod-ledger/generic"
)

// Roster is the fixed, ordered employee list a ledger is built from.
type Roster struct {
	employees []Employee
	index     map[generic.EntityID]int
}

// NewRoster validates and indexes employees, keeping their order.
func NewRoster(employees ...Employee) (*Roster, error) {
	r := &Roster{
		employees: make([]Employee, 0, len(employees)),
		index:     make(map[generic.EntityID]int, len(employees)),
	}
	for _, e := range employees {
		if strings.TrimSpace(string(e.ID)) == "" {
			return nil, fmt.Errorf("employee %q: id is required", e.Name)
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateEmployee, e.ID, e.Name)
		}
		for d := time.Sunday; d <= time.Saturday; d++ {
			if e.Pattern.HoursOn(d).IsNegative() {
				return nil, fmt.Errorf("employee %s: negative hours on %s", e.ID, d)
			}
		}
		r.index[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}
	return r, nil
}

// Lookup finds an employee by ID.
func (r *Roster) Lookup(id generic.EntityID) (Employee, bool) {
	i, ok := r.index[id]
	if !ok {
		return Employee{}, false
	}
	return r.employees[i], true
}

// Employees returns a copy in roster order.
func (r *Roster) Employees() []Employee {
	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

func (r *Roster) Len() int { return len(r.employees) }

// DefaultEmployees is the Absecon store roster. Belal H was listed under
// "17" together with Nick B; they are kept apart as "17" and "18".
func DefaultEmployees() []Employee {
	return []Employee{
		{ID: "1", Name: "John G", Pattern: Weekly(6, 0, 6, 0, 0, 0, 0)},
		{ID: "2", Name: "Cole B", Pattern: Weekly(0, 0, 0, 0, 6, 0, 0)},
		{ID: "3", Name: "Eric S", Pattern: Weekly(0, 0, 0, 6, 0, 0, 8)},
		{ID: "4", Name: "Michael F", Pattern: Weekly(0, 6, 0, 0, 6, 8, 0)},
		{ID: "5", Name: "Dean K", Pattern: Weekly(6, 6, 0, 0, 0, 0, 0)},
		{ID: "6", Name: "Tai T", Pattern: Weekly(0, 0, 6, 0, 0, 0, 0)},
		{ID: "7", Name: "Tyler B", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "8", Name: "Julie T", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "9", Name: "Chloe B", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "10", Name: "Jason T", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "11", Name: "Maeve M", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "12", Name: "Vincezo M", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "13", Name: "Sean D", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "14", Name: "Alexa K", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "15", Name: "Jameson M", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "16", Name: "Kayla D", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "17", Name: "Nick B", Pattern: Weekly(0, 0, 0, 0, 0, 0, 0)},
		{ID: "18", Name: "Belal H", Pattern: Weekly(0, 0, 6, 0, 0, 0, 0)},
	}
}

// DefaultRoster wraps DefaultEmployees.
func DefaultRoster() *Roster {
	r, err := NewRoster(DefaultEmployees()...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultAnchor is the first day of the first pay period.
func DefaultAnchor() generic.TimePoint {
	return generic.NewTimePoint(2024, time.May, 27)
}
