/*
handlers.go - HTTP API handlers for the pay-period ledger

PURPOSE:
  Exposes the payroll ledger via REST API. Handles HTTP request/response,
  JSON serialization, date parsing, and delegates to the ledger.

ENDPOINTS:
  Period:
    GET    /api/period                        Current pay period
    POST   /api/period/next                   Catch up to today's period
    POST   /api/period/previous               Step one period back

  Reporting:
    GET    /api/report                        Period report for everyone
    GET    /api/employees                     Roster
    GET    /api/employees/{id}                Period report for one employee
    GET    /api/employees/{id}/days/{date}    Workday lookup (MM-DD-YYYY)

  Mutations:
    POST   /api/employees/{id}/hours          Add hours
    POST   /api/employees/{id}/hours/remove   Remove hours
    POST   /api/shifts/switch                 Switch two shifts

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (dates, positive hours)
  3. Call the ledger
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  - 400: Malformed dates or hours, switch dates outside the period
  - 404: Unknown employee
  - 422: Balance cannot satisfy the request (body carries the result)
  - 503: Ledger is degraded
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

const msgOutsidePeriod = "Dates are not within the current pay period."

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *payroll.Ledger
	log    *zap.Logger
}

// NewHandler creates a new handler for the given ledger.
func NewHandler(ledger *payroll.Ledger, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Ledger: ledger, log: log}
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// GetPeriod returns the current pay period.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := h.Ledger.CurrentPeriod()
	if err != nil {
		h.writeLedgerError(w, "Failed to get period", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(p))
}

// NextPeriod advances to the period containing today.
func (h *Handler) NextPeriod(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, payroll.Forward)
}

// PreviousPeriod steps one period back.
func (h *Handler) PreviousPeriod(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, payroll.Backward)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request, dir payroll.Direction) {
	change, err := h.Ledger.Advance(r.Context(), dir)
	if err != nil {
		h.writeLedgerError(w, "Failed to change period", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, PeriodChangeDTO{
		From:  toPeriodDTO(change.From),
		To:    toPeriodDTO(change.To),
		Moved: change.Moved,
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport returns the period report for the whole roster.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Ledger.Report(r.Context())
	if err != nil {
		h.writeLedgerError(w, "Failed to build report", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// ListEmployees returns the roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Ledger.Employees()
	if err != nil {
		h.writeLedgerError(w, "Failed to list employees", err, nil)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns one employee's entries for the current period.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := generic.EntityID(chi.URLParam(r, "id"))
	rep, err := h.Ledger.EmployeeReport(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, "Failed to get employee", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeReportDTO(rep))
}

// GetDay reports whether a day is a workday and what it holds.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := generic.EntityID(chi.URLParam(r, "id"))

	// Slashes cannot appear in a path segment
	date, err := generic.ParseDate(strings.ReplaceAll(chi.URLParam(r, "date"), "-", "/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if _, err := h.Ledger.Employee(id); err != nil {
		h.writeLedgerError(w, "Failed to get employee", err, nil)
		return
	}

	work, err := h.Ledger.WorkHours(ctx, id, date)
	if err != nil {
		h.writeLedgerError(w, "Failed to get work hours", err, nil)
		return
	}
	added, err := h.Ledger.Adjustment(ctx, id, date)
	if err != nil {
		h.writeLedgerError(w, "Failed to get added hours", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, DayDTO{
		EmployeeID: string(id),
		Date:       date.USString(),
		IsWorkday:  work.IsPositive(),
		WorkHours:  hoursValue(work),
		AddedHours: hoursValue(added),
	})
}

// =============================================================================
// MUTATION HANDLERS
// =============================================================================

// AddHours accumulates hours on top of the baseline.
func (h *Handler) AddHours(w http.ResponseWriter, r *http.Request) {
	id := generic.EntityID(chi.URLParam(r, "id"))
	date, hours, ok := decodeHours(w, r)
	if !ok {
		return
	}
	res, err := h.Ledger.AddHours(r.Context(), id, date, hours)
	if err != nil {
		h.writeLedgerError(w, "Failed to add hours", err, &res)
		return
	}
	writeJSON(w, http.StatusCreated, toResultDTO(res))
}

// RemoveHours draws hours down from the adjustment first, then the baseline.
func (h *Handler) RemoveHours(w http.ResponseWriter, r *http.Request) {
	id := generic.EntityID(chi.URLParam(r, "id"))
	date, hours, ok := decodeHours(w, r)
	if !ok {
		return
	}
	res, err := h.Ledger.RemoveHours(r.Context(), id, date, hours)
	if err != nil {
		h.writeLedgerError(w, "Failed to remove hours", err, &res)
		return
	}
	writeJSON(w, http.StatusOK, toResultDTO(res))
}

// SwitchShifts swaps two baseline shifts within the current period.
func (h *Handler) SwitchShifts(w http.ResponseWriter, r *http.Request) {
	var req SwitchShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if req.EmployeeID1 == "" || req.EmployeeID2 == "" {
		writeError(w, http.StatusBadRequest, "Both employee IDs are required", nil)
		return
	}
	date1, err := generic.ParseDate(req.Date1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_1", err)
		return
	}
	date2, err := generic.ParseDate(req.Date2)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_2", err)
		return
	}

	res, err := h.Ledger.SwitchShiftsInCurrentPeriod(r.Context(),
		generic.EntityID(req.EmployeeID1), generic.EntityID(req.EmployeeID2), date1, date2)
	if errors.Is(err, payroll.ErrOutsidePeriod) {
		writeError(w, http.StatusBadRequest, msgOutsidePeriod, nil)
		return
	}
	if err != nil {
		h.writeLedgerError(w, "Failed to switch shifts", err, &res)
		return
	}
	writeJSON(w, http.StatusOK, toResultDTO(res))
}

// Health reports liveness and whether the ledger is degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Err(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthDTO{Status: "degraded", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeHours parses and validates an add or remove body. On failure the
// response has already been written.
func decodeHours(w http.ResponseWriter, r *http.Request) (generic.TimePoint, generic.Amount, bool) {
	var req HoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return generic.TimePoint{}, generic.Amount{}, false
	}
	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return generic.TimePoint{}, generic.Amount{}, false
	}
	hours := generic.NewAmountFromDecimal(req.Hours, generic.UnitHours)
	if !hours.IsPositive() {
		writeError(w, http.StatusBadRequest, "Hours must be positive", generic.ErrInvalidAmount)
		return generic.TimePoint{}, generic.Amount{}, false
	}
	return date, hours, true
}

// statusFor maps ledger errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, payroll.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, generic.ErrInvalidAmount), errors.Is(err, payroll.ErrOutsidePeriod):
		return http.StatusBadRequest
	case payroll.IsClientError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeLedgerError(w http.ResponseWriter, message string, err error, res *payroll.Result) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(message, zap.Error(err))
	}
	resp := ErrorResponse{Error: message, Details: err.Error()}
	if res != nil && res.ID != "" {
		dto := toResultDTO(*res)
		resp.Result = &dto
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
