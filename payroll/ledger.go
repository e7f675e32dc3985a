/*
ledger.go - Pay-period hours ledger

PURPOSE:
  Owns the current pay-period window and both hour layers of every employee:
  the baseline expanded from each weekly pattern, and the adjustments added
  on top. Every add, remove and shift switch goes through here.

WINDOW:
  Window n covers [anchor + n*length, anchor + (n+1)*length - 1].
  - Advance(Forward) is a catch-up: it only moves once today is past the
    current end, and then lands on the window containing today.
  - Advance(Backward) always steps back one full length, without a floor.
  - Follow is the background catch-up. It only moves the live window, never
    one the user stepped back to.
  The baseline is generated from the anchor through the current end and is
  extended (never rewritten) whenever the end moves past what was generated.

MUTATIONS:
  AddHours     accumulate into the adjustment layer; no validation
  RemoveHours  draw down adjustment first, then baseline (generic.Balance)
  SwitchShifts move baseline hours between two employees across two days

  A removal that fails on the baseline keeps the adjustment it already
  consumed. The returned Result says so; the error says why it failed.

DEGRADED MODE:
  NewLedger never panics. If the configuration is unusable it returns the
  ledger together with the error, and every method of that ledger returns
  ErrLedgerUnavailable wrapping the cause.

CONCURRENCY:
  One mutex per ledger. SwitchShifts runs its four steps under a single
  acquisition.

SEE ALSO:
  - generic/balance.go: Draw-down order
  - schedule.go: Baseline generation
  - report.go: Queries
*/
package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/generic/store"
)

// Config holds everything a Ledger is built from. Store, Clock and Logger
// are optional.
type Config struct {
	Period generic.PayPeriodConfig
	Roster *Roster
	Store  generic.Store
	Clock  generic.Clock
	Logger *zap.Logger
}

type Ledger struct {
	mu sync.Mutex

	period generic.PayPeriodConfig
	roster *Roster
	store  generic.Store
	clock  generic.Clock
	log    *zap.Logger

	current generic.Period
	live    generic.Period // last window derived from the clock
	horizon generic.TimePoint // last day with a generated baseline
	initErr error
}

// NewLedger builds the ledger and generates baselines through the end of the
// period containing today. On error the returned ledger is degraded.
func NewLedger(ctx context.Context, cfg Config) (*Ledger, error) {
	l := &Ledger{
		period: cfg.Period,
		roster: cfg.Roster,
		store:  cfg.Store,
		clock:  cfg.Clock,
		log:    cfg.Logger,
	}
	if l.store == nil {
		l.store = store.NewMemory()
	}
	if l.clock == nil {
		l.clock = generic.Today
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}

	if err := l.init(ctx); err != nil {
		l.initErr = err
		l.log.Error("ledger initialization failed", zap.Error(err))
		return l, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	l.log.Info("ledger ready",
		zap.Stringer("period", l.current),
		zap.Int("employees", l.roster.Len()),
	)
	return l, nil
}

// Unavailable returns a degraded ledger for a configuration that could not
// even be loaded. Every method returns ErrLedgerUnavailable wrapping cause.
func Unavailable(cause error) *Ledger {
	return &Ledger{
		store:   store.NewMemory(),
		clock:   generic.Today,
		log:     zap.NewNop(),
		initErr: cause,
	}
}

func (l *Ledger) init(ctx context.Context) error {
	today := l.clock()
	if err := l.period.ValidateAt(today); err != nil {
		return err
	}
	if l.roster == nil || l.roster.Len() == 0 {
		return ErrEmptyRoster
	}
	l.current = l.period.PeriodFor(today)
	l.live = l.current
	return l.extendBaseline(ctx, l.current.End)
}

func (l *Ledger) usable() error {
	if l.initErr != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, l.initErr)
	}
	return nil
}

// Err reports the initialization failure of a degraded ledger, or nil.
func (l *Ledger) Err() error {
	return l.usable()
}

// extendBaseline generates baseline days from the current horizon (or the
// anchor) through end, leaving already generated days untouched.
func (l *Ledger) extendBaseline(ctx context.Context, end generic.TimePoint) error {
	from := l.period.Anchor
	if !l.horizon.IsZero() {
		if !end.After(l.horizon) {
			return nil
		}
		from = l.horizon.AddDays(1)
	}
	if end.Before(from) {
		return nil
	}
	for _, e := range l.roster.employees {
		if err := l.store.PutBatch(ctx, baselineEntries(e, from, end)); err != nil {
			return fmt.Errorf("generate baseline for %s: %w", e.ID, err)
		}
	}
	l.log.Debug("baseline extended",
		zap.Stringer("from", from),
		zap.Stringer("to", end),
	)
	l.horizon = end
	return nil
}

// =============================================================================
// PAY PERIOD WINDOW
// =============================================================================

// CurrentPeriod returns the active window.
func (l *Ledger) CurrentPeriod() (generic.Period, error) {
	if err := l.usable(); err != nil {
		return generic.Period{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, nil
}

// Advance moves the window. See the package doc for the two directions.
func (l *Ledger) Advance(ctx context.Context, dir Direction) (PeriodChange, error) {
	if err := l.usable(); err != nil {
		return PeriodChange{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.advanceLocked(ctx, dir)
}

// Follow is Advance(Forward) for background callers: it only catches up
// while the window is the live one, so a window the user stepped back to
// stays put until they move it themselves.
func (l *Ledger) Follow(ctx context.Context) (PeriodChange, error) {
	if err := l.usable(); err != nil {
		return PeriodChange{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != l.live {
		return PeriodChange{From: l.current, To: l.current}, nil
	}
	return l.advanceLocked(ctx, Forward)
}

func (l *Ledger) advanceLocked(ctx context.Context, dir Direction) (PeriodChange, error) {
	change := PeriodChange{From: l.current, To: l.current}
	switch dir {
	case Forward:
		today := l.clock()
		if !today.After(l.current.End) {
			return change, nil
		}
		next := l.period.PeriodFor(today)
		if err := l.extendBaseline(ctx, next.End); err != nil {
			return change, err
		}
		l.current = next
		l.live = next
	case Backward:
		l.current = l.current.Shift(-l.period.Length)
	default:
		return change, fmt.Errorf("unknown direction %q", dir)
	}

	change.To = l.current
	change.Moved = true
	l.log.Info("pay period moved",
		zap.String("direction", string(dir)),
		zap.Stringer("from", change.From),
		zap.Stringer("to", change.To),
	)
	return change, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AddHours accumulates hours into the adjustment layer. Unknown employees and
// dates outside any period are accepted; they just never show up in reports.
func (l *Ledger) AddHours(ctx context.Context, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) (Result, error) {
	if err := l.usable(); err != nil {
		return Result{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addLocked(ctx, newResult(OpAddHours, employeeID, date, hours), employeeID, date, hours)
}

func (l *Ledger) addLocked(ctx context.Context, res Result, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) (Result, error) {
	current, _, err := l.store.Get(ctx, employeeID, generic.LayerAdjustment, date)
	if err != nil {
		return res, err
	}
	if err := l.putAdjustment(ctx, employeeID, date, current.Add(hours)); err != nil {
		return res, err
	}

	res.Message = fmt.Sprintf("Added %s hours for Employee ID %s on %s.", hours, employeeID, date.USString())
	l.log.Debug("hours added",
		zap.String("op", res.ID),
		zap.String("employee", string(employeeID)),
		zap.Stringer("date", date),
		zap.Stringer("hours", hours),
	)
	return res, nil
}

// RemoveHours takes hours away from an employee's day, adjustment first and
// baseline for the remainder. When the baseline cannot cover the remainder
// the error is ErrNoPresetHours or an *generic.InsufficientBalanceError, and
// Result.FromAdjustment still reports the added hours already removed.
func (l *Ledger) RemoveHours(ctx context.Context, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) (Result, error) {
	if err := l.usable(); err != nil {
		return Result{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(ctx, newResult(OpRemoveHours, employeeID, date, hours), employeeID, date, hours)
}

func (l *Ledger) removeLocked(ctx context.Context, res Result, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) (Result, error) {
	if _, ok := l.roster.Lookup(employeeID); !ok {
		return l.fail(res, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID))
	}
	if !hours.IsPositive() {
		return l.fail(res, fmt.Errorf("%w: hours to remove must be positive, got %s", generic.ErrInvalidAmount, hours))
	}

	before, err := generic.BalanceOf(ctx, l.store, employeeID, date)
	if err != nil {
		return res, err
	}
	after, w, drawErr := before.Withdraw(hours)
	res.FromAdjustment = w.FromAdjustment
	res.FromBaseline = w.FromBaseline

	if w.FromAdjustment.IsPositive() {
		if err := l.putAdjustment(ctx, employeeID, date, after.Adjustment); err != nil {
			return res, err
		}
	}
	if w.FromBaseline.IsPositive() {
		if err := l.putBaseline(ctx, employeeID, date, after.Baseline); err != nil {
			return res, err
		}
	}

	if drawErr != nil {
		var short *generic.InsufficientBalanceError
		switch {
		case errors.As(drawErr, &short):
			short.EntityID = employeeID
			short.Day = date
		case errors.Is(drawErr, generic.ErrNoPresetHours):
			drawErr = fmt.Errorf("%w found for %s", generic.ErrNoPresetHours, date.USString())
		}
		return l.fail(res, drawErr)
	}

	res.Message = fmt.Sprintf("Removed %s hours for Employee ID %s on %s.", hours, employeeID, date.USString())
	l.log.Debug("hours removed",
		zap.String("op", res.ID),
		zap.String("employee", string(employeeID)),
		zap.Stringer("date", date),
		zap.Stringer("from_adjustment", w.FromAdjustment),
		zap.Stringer("from_baseline", w.FromBaseline),
	)
	return res, nil
}

// SwitchShifts hands employee 1's baseline hours on date1 to employee 2, and
// employee 2's baseline hours on date2 to employee 1. Both must be positive,
// otherwise nothing changes.
func (l *Ledger) SwitchShifts(ctx context.Context, emp1, emp2 generic.EntityID, date1, date2 generic.TimePoint) (Result, error) {
	if err := l.usable(); err != nil {
		return Result{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.switchLocked(ctx, newResult(OpSwitchShifts, emp1, date1, generic.ZeroHours()), emp1, emp2, date1, date2)
}

// SwitchShiftsInCurrentPeriod is SwitchShifts restricted to dates inside the
// current window, checked under the same lock as the switch so the window
// cannot move in between.
func (l *Ledger) SwitchShiftsInCurrentPeriod(ctx context.Context, emp1, emp2 generic.EntityID, date1, date2 generic.TimePoint) (Result, error) {
	if err := l.usable(); err != nil {
		return Result{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	res := newResult(OpSwitchShifts, emp1, date1, generic.ZeroHours())
	if !l.current.Contains(date1) || !l.current.Contains(date2) {
		return l.fail(res, ErrOutsidePeriod)
	}
	return l.switchLocked(ctx, res, emp1, emp2, date1, date2)
}

func (l *Ledger) switchLocked(ctx context.Context, res Result, emp1, emp2 generic.EntityID, date1, date2 generic.TimePoint) (Result, error) {
	for _, id := range []generic.EntityID{emp1, emp2} {
		if _, ok := l.roster.Lookup(id); !ok {
			return l.fail(res, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id))
		}
	}

	hours1, _, err := l.store.Get(ctx, emp1, generic.LayerBaseline, date1)
	if err != nil {
		return res, err
	}
	hours2, _, err := l.store.Get(ctx, emp2, generic.LayerBaseline, date2)
	if err != nil {
		return res, err
	}
	if !hours1.IsPositive() || !hours2.IsPositive() {
		return l.fail(res, ErrNoShiftToSwitch)
	}

	steps := []func() error{
		func() error { _, err := l.removeLocked(ctx, res, emp1, date1, hours1); return err },
		func() error { _, err := l.addLocked(ctx, res, emp1, date2, hours2); return err },
		func() error { _, err := l.removeLocked(ctx, res, emp2, date2, hours2); return err },
		func() error { _, err := l.addLocked(ctx, res, emp2, date1, hours1); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			return l.fail(res, fmt.Errorf("switch step %d: %w", i+1, err))
		}
	}

	res.Hours = hours1.Add(hours2)
	res.Transfers = []Transfer{
		{From: emp1, To: emp2, Date: date1, Hours: hours1},
		{From: emp2, To: emp1, Date: date2, Hours: hours2},
	}
	res.Message = fmt.Sprintf("Transferred %s hours from %s to %s and %s hours from %s to %s.",
		hours1, emp1, emp2, hours2, emp2, emp1)
	l.log.Info("shifts switched",
		zap.String("op", res.ID),
		zap.String("employee_1", string(emp1)),
		zap.String("employee_2", string(emp2)),
		zap.Stringer("date_1", date1),
		zap.Stringer("date_2", date2),
	)
	return res, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func newResult(op Operation, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) Result {
	return Result{
		ID:             uuid.NewString(),
		Operation:      op,
		EmployeeID:     employeeID,
		Date:           date,
		Hours:          hours,
		FromAdjustment: generic.ZeroHours(),
		FromBaseline:   generic.ZeroHours(),
	}
}

func (l *Ledger) fail(res Result, err error) (Result, error) {
	res.Message = err.Error()
	if res.FromAdjustment.IsPositive() {
		res.Message += fmt.Sprintf(" (%s added hours were already removed)", res.FromAdjustment)
	}
	l.log.Warn("mutation failed",
		zap.String("op", res.ID),
		zap.String("operation", string(res.Operation)),
		zap.String("employee", string(res.EmployeeID)),
		zap.Error(err),
	)
	return res, err
}

// putAdjustment keeps the adjustment layer sparse.
func (l *Ledger) putAdjustment(ctx context.Context, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) error {
	if !hours.IsPositive() {
		return l.store.Delete(ctx, employeeID, generic.LayerAdjustment, date)
	}
	return l.store.Put(ctx, generic.Entry{EntityID: employeeID, Layer: generic.LayerAdjustment, Day: date, Hours: hours})
}

func (l *Ledger) putBaseline(ctx context.Context, employeeID generic.EntityID, date generic.TimePoint, hours generic.Amount) error {
	if !hours.IsPositive() {
		return l.store.Delete(ctx, employeeID, generic.LayerBaseline, date)
	}
	return l.store.Put(ctx, generic.Entry{EntityID: employeeID, Layer: generic.LayerBaseline, Day: date, Hours: hours})
}
