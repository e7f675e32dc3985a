/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the ledger's model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FORMATS:
  Dates are MM/DD/YYYY strings in both directions. Request hours accept a
  JSON number or a numeric string; response hours are JSON numbers.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// HoursRequest is the body of add and remove.
type HoursRequest struct {
	Date  string          `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

// SwitchShiftsRequest is the body of a shift switch.
type SwitchShiftsRequest struct {
	EmployeeID1 string `json:"employee_id_1"`
	EmployeeID2 string `json:"employee_id_2"`
	Date1       string `json:"date_1"`
	Date2       string `json:"date_2"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type PeriodChangeDTO struct {
	From  PeriodDTO `json:"from"`
	To    PeriodDTO `json:"to"`
	Moved bool      `json:"moved"`
}

type EmployeeDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	WeeklyHours map[string]float64 `json:"weekly_hours"`
}

type DayEntryDTO struct {
	Date        string  `json:"date"`
	PresetHours float64 `json:"preset_hours"`
	AddedHours  float64 `json:"added_hours"`
	TotalHours  float64 `json:"total_hours"`
}

type EmployeeReportDTO struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Entries    []DayEntryDTO `json:"entries"`
	TotalHours float64       `json:"total_hours"`
}

type SummaryLineDTO struct {
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

type ReportDTO struct {
	Period     PeriodDTO           `json:"period"`
	Employees  []EmployeeReportDTO `json:"employees"`
	Summary    []SummaryLineDTO    `json:"summary"`
	GrandTotal float64             `json:"grand_total"`
}

type DayDTO struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	IsWorkday  bool    `json:"is_workday"`
	WorkHours  float64 `json:"work_hours"`
	AddedHours float64 `json:"added_hours"`
}

type TransferDTO struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ResultDTO reports what a mutation did.
type ResultDTO struct {
	ID             string        `json:"id"`
	Operation      string        `json:"operation"`
	EmployeeID     string        `json:"employee_id"`
	Date           string        `json:"date"`
	Hours          float64       `json:"hours"`
	FromAdjustment float64       `json:"from_adjustment"`
	FromBaseline   float64       `json:"from_baseline"`
	Transfers      []TransferDTO `json:"transfers,omitempty"`
	Message        string        `json:"message"`
}

type HealthDTO struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponse is the standard error response. Result is set when the
// failed mutation still applied part of its effect.
type ErrorResponse struct {
	Error   string     `json:"error"`
	Details string     `json:"details,omitempty"`
	Result  *ResultDTO `json:"result,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func hoursValue(a generic.Amount) float64 {
	return a.Value.InexactFloat64()
}

func formatDate(tp generic.TimePoint) string {
	if tp.IsZero() {
		return ""
	}
	return tp.USString()
}

func toPeriodDTO(p generic.Period) PeriodDTO {
	return PeriodDTO{
		Start: formatDate(p.Start),
		End:   formatDate(p.End),
		Label: formatDate(p.Start) + " - " + formatDate(p.End),
	}
}

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	weekly := make(map[string]float64, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekly[strings.ToLower(d.String())] = hoursValue(e.Pattern.HoursOn(d))
	}
	return EmployeeDTO{ID: string(e.ID), Name: e.Name, WeeklyHours: weekly}
}

func toEmployeeReportDTO(r payroll.EmployeeReport) EmployeeReportDTO {
	entries := make([]DayEntryDTO, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = DayEntryDTO{
			Date:        formatDate(e.Date),
			PresetHours: hoursValue(e.Baseline),
			AddedHours:  hoursValue(e.Adjustment),
			TotalHours:  hoursValue(e.Total()),
		}
	}
	return EmployeeReportDTO{
		ID:         string(r.ID),
		Name:       r.Name,
		Entries:    entries,
		TotalHours: hoursValue(r.Total),
	}
}

func toReportDTO(r payroll.PeriodReport) ReportDTO {
	dto := ReportDTO{
		Period:     toPeriodDTO(r.Period),
		Employees:  make([]EmployeeReportDTO, len(r.Employees)),
		Summary:    make([]SummaryLineDTO, len(r.Summary)),
		GrandTotal: hoursValue(r.GrandTotal),
	}
	for i, e := range r.Employees {
		dto.Employees[i] = toEmployeeReportDTO(e)
	}
	for i, s := range r.Summary {
		dto.Summary[i] = SummaryLineDTO{Name: s.Name, TotalHours: hoursValue(s.Total)}
	}
	return dto
}

func toResultDTO(r payroll.Result) ResultDTO {
	dto := ResultDTO{
		ID:             r.ID,
		Operation:      string(r.Operation),
		EmployeeID:     string(r.EmployeeID),
		Date:           formatDate(r.Date),
		Hours:          hoursValue(r.Hours),
		FromAdjustment: hoursValue(r.FromAdjustment),
		FromBaseline:   hoursValue(r.FromBaseline),
		Message:        r.Message,
	}
	for _, t := range r.Transfers {
		dto.Transfers = append(dto.Transfers, TransferDTO{
			From:  string(t.From),
			To:    string(t.To),
			Date:  formatDate(t.Date),
			Hours: hoursValue(t.Hours),
		})
	}
	return dto
}
