package rendezvous

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// A Turnstile is a counting version of Rendezvous: up to capacity
// signals can be pending at once, and each releases one Wait.
//
// With capacity 1 it behaves like a Rendezvous. With a larger capacity,
// k priming signals let k goroutines hold a turn at the same time, so it
// must not be used to protect state that only one goroutine may touch.
type Turnstile struct {
	sem      *semaphore.Weighted
	capacity int64

	mu      sync.Mutex
	pending int64 // signals not yet claimed by a Wait
}

// NewTurnstile returns a Turnstile with no pending signals that can hold
// up to capacity of them. A capacity less than 1 is treated as 1.
func NewTurnstile(capacity int64) *Turnstile {
	capacity = max(capacity, 1)
	sem := semaphore.NewWeighted(capacity)
	// Start with every token held: a token is released per pending signal.
	sem.TryAcquire(capacity)
	return &Turnstile{sem: sem, capacity: capacity}
}

// Wait blocks until a signal is pending, then consumes it.
func (t *Turnstile) Wait() {
	_ = t.WaitContext(context.Background())
}

// WaitContext is like Wait, but returns ctx's error if ctx is done first.
func (t *Turnstile) WaitContext(ctx context.Context) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	t.mu.Lock()
	t.pending--
	t.mu.Unlock()
	return nil
}

// Signal adds a pending signal. Signals beyond the capacity are dropped.
func (t *Turnstile) Signal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending >= t.capacity {
		return
	}
	t.pending++
	t.sem.Release(1)
}

// Pending returns the number of signals not yet consumed.
func (t *Turnstile) Pending() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
