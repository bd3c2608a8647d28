// Package rendezvous provides a single-slot hand-off primitive and the
// condition variable it is built on.
//
// A Rendezvous lets goroutines take turns: a goroutine calls Wait to get
// the turn and Signal to give it up. Because a Signal is consumed by exactly
// one Wait, at most one goroutine is ever between a Wait and the following
// Signal, so state touched only by the turn holder needs no lock of its own.
//
// Someone has to make the first move. If every participant starts by
// calling Wait, nobody will ever call Signal and they all block forever.
// Issue one "priming" Signal before (or while) the participants start.
package rendezvous

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by WaitContext after the Rendezvous is closed.
var ErrClosed = errors.New("rendezvous: closed")

// State describes whether a Rendezvous holds an unconsumed signal.
type State int

const (
	Empty    State = iota // no pending signal
	Signaled              // a signal is waiting to be consumed
	Closed                // Close has been called
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Signaled:
		return "signaled"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// A Rendezvous is a boolean "ready" flag, the lock guarding it,
// and a condition variable to wait for it.
//
// Signals do not accumulate: two Signals with no Wait in between
// release only one Wait.
type Rendezvous struct {
	mu     sync.Locker
	cond   *Cond
	ready  bool // guarded by mu
	closed bool // guarded by mu
}

// New returns a Rendezvous guarded by a sync.Mutex.
func New() *Rendezvous {
	return NewWithLocker(new(sync.Mutex))
}

// NewWithLocker returns a Rendezvous guarded by l.
// l must not be used for anything else while the Rendezvous is in use.
func NewWithLocker(l sync.Locker) *Rendezvous {
	return &Rendezvous{mu: l, cond: NewCond(l)}
}

// Wait blocks until a signal is pending, then consumes it.
// On a closed Rendezvous, Wait returns immediately.
func (r *Rendezvous) Wait() {
	_ = r.WaitContext(context.Background())
}

// WaitContext is like Wait, but returns context.Cause(ctx) if ctx is done
// before a signal could be consumed, and ErrClosed if r is closed.
// Only a nil return means the caller has the turn.
func (r *Rendezvous) WaitContext(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		if r.closed {
			return ErrClosed
		}
		if r.ready {
			break
		}
		if err := r.cond.WaitContext(ctx); err != nil {
			return err
		}
	}
	r.ready = false
	return nil
}

// TryWait consumes a pending signal without blocking.
// It reports whether it did.
func (r *Rendezvous) TryWait() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.ready {
		return false
	}
	r.ready = false
	return true
}

// Signal makes a signal pending and wakes one waiter, if there is one.
// Signaling an already signaled Rendezvous has no further effect.
func (r *Rendezvous) Signal() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.ready = true
	r.mu.Unlock()
	r.cond.Signal()
}

// Close wakes all waiters, which return ErrClosed, and makes every later
// WaitContext fail the same way. Signal on a closed Rendezvous does nothing.
func (r *Rendezvous) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cond.Broadcast()
}

// State returns the current state of r.
func (r *Rendezvous) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.closed:
		return Closed
	case r.ready:
		return Signaled
	}
	return Empty
}
