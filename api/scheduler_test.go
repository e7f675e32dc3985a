package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

type movableClock struct {
	mu    sync.Mutex
	today generic.TimePoint
}

func (c *movableClock) Now() generic.TimePoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

func (c *movableClock) Set(tp generic.TimePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = tp
}

func TestPeriodScheduler_FollowsClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &movableClock{today: generic.NewTimePoint(2024, time.June, 1)}
	ledger, err := payroll.NewLedger(context.Background(), payroll.Config{
		Period: generic.PayPeriodConfig{Anchor: payroll.DefaultAnchor(), Length: generic.DefaultPayPeriodLength},
		Roster: payroll.DefaultRoster(),
		Clock:  clock.Now,
	})
	require.NoError(t, err)

	s := NewPeriodScheduler(ledger, nil)
	s.Interval = 5 * time.Millisecond
	s.Start()
	defer s.Stop()

	clock.Set(generic.NewTimePoint(2024, time.June, 20))

	assert.Eventually(t, func() bool {
		p, err := ledger.CurrentPeriod()
		return err == nil && p.Start.String() == "2024-06-10"
	}, time.Second, 5*time.Millisecond)
}

func TestPeriodScheduler_KeepsBrowsedWindow(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &movableClock{today: generic.NewTimePoint(2024, time.June, 1)}
	ledger, err := payroll.NewLedger(context.Background(), payroll.Config{
		Period: generic.PayPeriodConfig{Anchor: payroll.DefaultAnchor(), Length: generic.DefaultPayPeriodLength},
		Roster: payroll.DefaultRoster(),
		Clock:  clock.Now,
	})
	require.NoError(t, err)
	_, err = ledger.Advance(context.Background(), payroll.Backward)
	require.NoError(t, err)

	s := NewPeriodScheduler(ledger, nil)
	s.Interval = 5 * time.Millisecond
	s.Start()
	defer s.Stop()

	clock.Set(generic.NewTimePoint(2024, time.June, 20))

	assert.Never(t, func() bool {
		p, err := ledger.CurrentPeriod()
		return err != nil || p.Start.String() != "2024-05-13"
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestPeriodScheduler_Disabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewPeriodScheduler(nil, nil)
	s.Interval = 0
	s.Start()
	s.Stop()
}

func TestPeriodScheduler_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	ledger, _ := payroll.NewLedger(context.Background(), payroll.Config{}) // degraded, ticks only log
	s := NewPeriodScheduler(ledger, nil)
	s.Interval = time.Millisecond
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}
