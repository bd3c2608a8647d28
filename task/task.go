// Package task makes goroutine lifetime an explicit choice.
//
// A goroutine started with Start is owned by its Handle. The owner either
// joins it, waiting for its result, or detaches it, declaring that nobody
// will ever wait for it. A detached goroutine keeps running until its
// function returns or the process exits, whichever comes first.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDetached is returned by Join on a detached Handle.
var ErrDetached = errors.New("task: detached")

// A Handle refers to a running or finished task.
type Handle struct {
	name string
	done chan struct{} // closed when f returns
	err  error         // written before done is closed

	mu       sync.Mutex
	detached bool
}

// Start runs f on a new goroutine and returns its Handle.
// A panic in f is recovered and reported by Join as an error.
func Start(ctx context.Context, name string, f func(context.Context) error) *Handle {
	h := &Handle{name: name, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = fmt.Errorf("task %s: panic: %v", name, r)
			}
		}()
		h.err = f(ctx)
	}()
	return h
}

// Detach starts f and immediately detaches it: fire and forget.
func Detach(ctx context.Context, name string, f func(context.Context) error) {
	Start(ctx, name, f).Detach()
}

// Name returns the name the task was started with.
func (h *Handle) Name() string { return h.name }

// Done returns a channel that is closed when the task's function returns.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Join waits for the task to finish and returns its error.
// It returns ErrDetached without waiting if h has been detached.
func (h *Handle) Join() error {
	if h.Detached() {
		return fmt.Errorf("join %s: %w", h.name, ErrDetached)
	}
	<-h.done
	return h.err
}

// Detach gives up ownership of the task. It does not stop it.
// After Detach, Join returns ErrDetached. Detach is idempotent.
func (h *Handle) Detach() {
	h.mu.Lock()
	h.detached = true
	h.mu.Unlock()
}

// Detached reports whether Detach has been called.
func (h *Handle) Detached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detached
}
