package rendezvous

import (
	"context"
	"slices"
	"sync"
)

// Cond is a condition variable that works with any sync.Locker,
// not just a *sync.Mutex.
//
// As with sync.Cond, a wake-up says nothing about the state the caller
// is waiting for. Callers must hold L and re-check their condition in a loop:
//
//	c.L.Lock()
//	for !condition() {
//		c.Wait()
//	}
//	... use the state ...
//	c.L.Unlock()
type Cond struct {
	L sync.Locker

	mu      sync.Mutex
	waiters []chan struct{} // oldest first
}

// NewCond returns a Cond bound to l.
func NewCond(l sync.Locker) *Cond {
	return &Cond{L: l}
}

// Wait unlocks c.L, suspends the calling goroutine until it is woken
// by Signal or Broadcast, and locks c.L again before returning.
func (c *Cond) Wait() {
	_ = c.WaitContext(context.Background())
}

// WaitContext is like Wait, but also returns when ctx is done.
// In that case it returns context.Cause(ctx) and the waiter no longer
// occupies a place in the queue.
// c.L is held on return in both cases.
func (c *Cond) WaitContext(ctx context.Context) error {
	ch := make(chan struct{})
	// Enqueue before releasing L, so a Signal issued by someone who
	// acquires L after us cannot be missed.
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()

	c.L.Unlock()
	defer c.L.Lock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.Index(c.waiters, ch); i >= 0 {
		c.waiters = slices.Delete(c.waiters, i, i+1)
		return context.Cause(ctx)
	}
	// A Signal picked us while ctx was ending. Report the wake-up,
	// otherwise that Signal would be lost.
	return nil
}

// Signal wakes the goroutine that has been waiting longest, if any.
// The caller may, but need not, hold c.L.
func (c *Cond) Signal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.waiters) == 0 {
		return
	}
	close(c.waiters[0])
	c.waiters = slices.Delete(c.waiters, 0, 1)
}

// Broadcast wakes all waiting goroutines.
func (c *Cond) Broadcast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.waiters {
		close(ch)
	}
	c.waiters = nil
}

// waiting reports the number of queued waiters.
func (c *Cond) waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}
