// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/payperiod-ledger/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries map[key]map[time.Time]generic.Amount
}

type key struct {
	EntityID generic.EntityID
	Layer    generic.Layer
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[key]map[time.Time]generic.Amount),
	}
}

func (m *Memory) Get(_ context.Context, entityID generic.EntityID, layer generic.Layer, day generic.TimePoint) (generic.Amount, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hours, ok := m.entries[key{EntityID: entityID, Layer: layer}][day.Key()]
	if !ok {
		return generic.ZeroHours(), false, nil
	}
	return hours, true, nil
}

func (m *Memory) Put(_ context.Context, e generic.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putLocked(e, true)
	return nil
}

// PutBatch only fills missing days.
func (m *Memory) PutBatch(_ context.Context, entries []generic.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.putLocked(e, false)
	}
	return nil
}

func (m *Memory) putLocked(e generic.Entry, overwrite bool) {
	k := key{EntityID: e.EntityID, Layer: e.Layer}
	days, ok := m.entries[k]
	if !ok {
		days = make(map[time.Time]generic.Amount)
		m.entries[k] = days
	}
	if _, exists := days[e.Day.Key()]; exists && !overwrite {
		return
	}
	days[e.Day.Key()] = e.Hours
}

func (m *Memory) Delete(_ context.Context, entityID generic.EntityID, layer generic.Layer, day generic.TimePoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{EntityID: entityID, Layer: layer}
	delete(m.entries[k], day.Key())
	if len(m.entries[k]) == 0 {
		delete(m.entries, k)
	}
	return nil
}

func (m *Memory) LoadRange(_ context.Context, entityID generic.EntityID, layer generic.Layer, from, to generic.TimePoint) ([]generic.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []generic.Entry
	for day, hours := range m.entries[key{EntityID: entityID, Layer: layer}] {
		tp := generic.TimePoint{Time: day}
		if from.BeforeOrEqual(tp) && tp.BeforeOrEqual(to) {
			result = append(result, generic.Entry{EntityID: entityID, Layer: layer, Day: tp, Hours: hours})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.Before(result[j].Day)
	})
	return result, nil
}
