// Package turns runs workers that share an unsynchronized counter by
// taking turns through a Baton.
package turns

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// A Baton hands out turns. WaitContext returns nil once the caller holds
// the turn; Signal gives it up.
// *rendezvous.Rendezvous and *rendezvous.Turnstile are Batons.
type Baton interface {
	WaitContext(ctx context.Context) error
	Signal()
}

// Counter is the cell the workers share. It has no lock:
// only the goroutine holding the turn may read or write it.
type Counter struct {
	Value int
	// History[v] is the id of the worker that moved Value from v to v+1.
	History []int
}

// Worker takes iterations turns. In each turn it increments c exactly once
// with a plain read-modify-write.
func Worker(ctx context.Context, b Baton, c *Counter, id, iterations int) error {
	for range iterations {
		if err := b.WaitContext(ctx); err != nil {
			return fmt.Errorf("worker %d: %w", id, err)
		}
		read := c.Value
		c.Value = read + 1
		c.History = append(c.History, id)
		b.Signal()
	}
	return nil
}

// Config describes a run.
type Config struct {
	Workers    int // number of workers; defaults to 2
	Iterations int // turns per worker
	// Primes is the number of priming signals issued after the workers
	// start. Zero means one, unless Unprimed is set. More than one lets a
	// second worker in while the first still holds its turn.
	Primes   int
	Unprimed bool // issue no priming signal; the workers deadlock
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.Unprimed {
		c.Primes = 0
	} else if c.Primes <= 0 {
		c.Primes = 1
	}
	return c
}

// Run starts the workers, primes b and waits for the workers to finish.
// If a worker fails, typically because ctx ended, the others are canceled
// and the first error is returned.
//
// c must not be touched by anyone else until Run returns.
func Run(ctx context.Context, b Baton, c *Counter, cfg Config) error {
	cfg = cfg.withDefaults()
	g, ctx := errgroup.WithContext(ctx)
	for id := range cfg.Workers {
		g.Go(func() error {
			return Worker(ctx, b, c, id, cfg.Iterations)
		})
	}
	for range cfg.Primes {
		b.Signal()
	}
	return g.Wait()
}
