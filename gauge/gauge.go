// Package gauge holds a value guarded by a lock of the caller's choosing,
// and lets goroutines wait for the value to reach a threshold.
package gauge

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jba/threads-workshop/rendezvous"
)

// A Gauge is an int guarded by a sync.Locker.
type Gauge struct {
	mu    sync.Locker
	cond  *rendezvous.Cond
	value int // guarded by mu
}

// New returns a Gauge with value zero, guarded by l.
func New(l sync.Locker) *Gauge {
	return &Gauge{mu: l, cond: rendezvous.NewCond(l)}
}

// Set stores v and wakes every waiter to re-check its threshold.
// Waiters have different thresholds, so waking only one could wake the
// wrong one and leave a satisfied waiter asleep.
func (g *Gauge) Set(v int) {
	g.mu.Lock()
	g.value = v
	g.mu.Unlock()
	g.cond.Broadcast()
}

// Value returns the current value.
func (g *Gauge) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// WaitAtLeast blocks until the value is at least threshold and returns the
// value it saw. Because Set may run again before the waiter gets the lock,
// that value can be larger than the one that woke it.
func (g *Gauge) WaitAtLeast(ctx context.Context, threshold int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.value < threshold {
		if err := g.cond.WaitContext(ctx); err != nil {
			return 0, err
		}
	}
	return g.value, nil
}

// CountingMutex is a lock type of our own. It is not a sync.Mutex, but it has
// Lock and Unlock, so it can guard a Gauge.
type CountingMutex struct {
	mu    sync.Mutex
	locks atomic.Int64
}

func (m *CountingMutex) Lock() {
	m.mu.Lock()
	m.locks.Add(1)
}

func (m *CountingMutex) Unlock() { m.mu.Unlock() }

// Acquisitions returns how many times m has been locked.
func (m *CountingMutex) Acquisitions() int64 { return m.locks.Load() }
