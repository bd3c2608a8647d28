// Package counter shows what happens when goroutines increment a shared
// counter with and without a mutex.
package counter

import "sync"

// A Counter is an int that goroutines increment concurrently.
type Counter struct {
	mu sync.Mutex
	n  int
}

// Value returns the current count. Call it only after all incrementing
// goroutines have finished.
func (c *Counter) Value() int { return c.n }

// A Strategy increments a Counter once.
type Strategy func(*Counter)

// Unlocked reads the count and writes it back plus one, with no
// synchronization. Concurrent calls lose updates.
func Unlocked(c *Counter) {
	read := c.n
	c.n = read + 1
}

// Locked does the same read and write while holding c's mutex.
func Locked(c *Counter) {
	c.mu.Lock()
	read := c.n
	c.n = read + 1
	c.mu.Unlock()
}

// Run starts one goroutine per strategy, each incrementing a fresh
// Counter iterations times, and returns the final count.
//
// The result is len(strategies)*iterations only if every strategy is Locked.
// Run with the race detector to see why.
func Run(iterations int, strategies ...Strategy) int {
	var (
		c  Counter
		wg sync.WaitGroup
	)
	for _, inc := range strategies {
		wg.Go(func() {
			for range iterations {
				inc(&c)
			}
		})
	}
	wg.Wait()
	return c.Value()
}
