/*
scheduler.go - Automated pay period advancement

PURPOSE:
  Keeps the ledger's current window following the wall clock. Every tick
  calls Follow, which is a no-op until today passes the end of the live
  period, and leaves a window the user stepped back to alone.

CONFIGURATION:
  - Interval: How often to check (default: 1 hour, 0 disables)

USAGE:
  scheduler := NewPeriodScheduler(ledger, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: NextPeriod endpoint (manual advancement)
  - payroll/ledger.go: Follow
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/payperiod-ledger/payroll"
)

const DefaultAdvanceInterval = time.Hour

// PeriodScheduler advances the ledger's period in the background.
type PeriodScheduler struct {
	Ledger   *payroll.Ledger
	Interval time.Duration

	log    *zap.Logger
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPeriodScheduler creates a scheduler with the default interval.
func NewPeriodScheduler(ledger *payroll.Ledger, log *zap.Logger) *PeriodScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PeriodScheduler{
		Ledger:   ledger,
		Interval: DefaultAdvanceInterval,
		log:      log,
	}
}

// Start begins the scheduler. It is a no-op when Interval is not positive or
// the scheduler is already running.
func (ps *PeriodScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.Interval <= 0 {
		ps.log.Info("period scheduler disabled")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.Interval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)
	go ps.run(ps.ticker, ps.stop)

	ps.log.Info("period scheduler started", zap.Duration("interval", ps.Interval))
}

// Stop stops the scheduler and waits for the running check to finish.
func (ps *PeriodScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker == nil {
		return
	}
	ps.ticker.Stop()
	close(ps.stop)
	ps.wg.Wait()
	ps.ticker = nil
	ps.log.Info("period scheduler stopped")
}

func (ps *PeriodScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ps.wg.Done()

	// Run immediately on start
	ps.tick()

	for {
		select {
		case <-ticker.C:
			ps.tick()
		case <-stop:
			return
		}
	}
}

func (ps *PeriodScheduler) tick() {
	change, err := ps.Ledger.Follow(context.Background())
	if err != nil {
		ps.log.Warn("period advance failed", zap.Error(err))
		return
	}
	if change.Moved {
		ps.log.Info("pay period advanced",
			zap.Stringer("from", change.From),
			zap.Stringer("to", change.To),
		)
	}
}
