// Command threads runs the workshop's concurrency demos.
//
// Usage:
//
//	threads [flags] race|lock|rendezvous|turnstile|condany|detach
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jba/threads-workshop/counter"
	"github.com/jba/threads-workshop/gauge"
	"github.com/jba/threads-workshop/rendezvous"
	"github.com/jba/threads-workshop/task"
	"github.com/jba/threads-workshop/turns"
)

type config struct {
	iterations int
	workers    int
	primes     int
	timeout    time.Duration
	threshold  int
	tick       time.Duration
	linger     time.Duration
}

func main() {
	var cfg config
	flag.IntVar(&cfg.iterations, "n", 100_000, "iterations per goroutine")
	flag.IntVar(&cfg.workers, "workers", 2, "number of turn-taking workers")
	flag.IntVar(&cfg.primes, "primes", 1, "priming signals (0 deadlocks the workers)")
	flag.DurationVar(&cfg.timeout, "timeout", 0, "give up after this long (0 means never)")
	flag.IntVar(&cfg.threshold, "threshold", 10_000, "value the condany waiter waits for")
	flag.DurationVar(&cfg.tick, "tick", time.Second, "interval between detached task ticks")
	flag.DurationVar(&cfg.linger, "linger", 10*time.Second, "how long main waits before detaching")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: threads [flags] race|lock|rendezvous|turnstile|condany|detach")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, os.Stdout, flag.Arg(0), cfg); err != nil {
		logger.Error("demo failed", "demo", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

var demos = map[string]func(context.Context, *demo) error{
	"race":       runRace,
	"lock":       runLock,
	"rendezvous": runRendezvous,
	"turnstile":  runTurnstile,
	"condany":    runCondAny,
	"detach":     runDetach,
}

// A demo carries what every demo function needs.
type demo struct {
	cfg    config
	logger *slog.Logger
	p      *message.Printer
	out    io.Writer
}

func run(ctx context.Context, logger *slog.Logger, out io.Writer, name string, cfg config) error {
	f, ok := demos[name]
	if !ok {
		return fmt.Errorf("unknown demo %q", name)
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	d := &demo{
		cfg:    cfg,
		logger: logger.With("demo", name),
		p:      message.NewPrinter(language.English),
		out:    &syncWriter{w: out},
	}
	d.logger.Debug("starting", "iterations", cfg.iterations, "workers", cfg.workers)
	start := time.Now()
	err := f(ctx, d)
	d.logger.Debug("finished", "elapsed", time.Since(start))
	return err
}

func runRace(ctx context.Context, d *demo) error {
	n := counter.Run(d.cfg.iterations, counter.Unlocked, counter.Locked)
	d.p.Fprintf(d.out, "Afterwards the value of the counter, without locking, is: %d (of %d)\n",
		n, 2*d.cfg.iterations)
	return nil
}

func runLock(ctx context.Context, d *demo) error {
	n := counter.Run(d.cfg.iterations, counter.Locked, counter.Locked)
	d.p.Fprintf(d.out, "Afterwards the value of the counter, with locking, is: %d\n", n)
	return nil
}

func runRendezvous(ctx context.Context, d *demo) error {
	return runTurns(ctx, d, rendezvous.New())
}

func runTurnstile(ctx context.Context, d *demo) error {
	return runTurns(ctx, d, rendezvous.NewTurnstile(int64(max(d.cfg.primes, 1))))
}

func runTurns(ctx context.Context, d *demo, b turns.Baton) error {
	var c turns.Counter
	cfg := turns.Config{
		Workers:    d.cfg.workers,
		Iterations: d.cfg.iterations,
		Primes:     d.cfg.primes,
		Unprimed:   d.cfg.primes <= 0,
	}
	if cfg.Unprimed {
		d.logger.Warn("no priming signal: the workers will wait for each other forever")
	}
	if err := turns.Run(ctx, b, &c, cfg); err != nil {
		return err
	}
	d.p.Fprintf(d.out, "Afterwards the value of the counter, taking turns, is: %d (of %d)\n",
		c.Value, d.cfg.workers*d.cfg.iterations)
	return nil
}

func runCondAny(ctx context.Context, d *demo) error {
	var mu gauge.CountingMutex
	g := gauge.New(&mu)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		v, err := g.WaitAtLeast(ctx, d.cfg.threshold)
		if err != nil {
			return err
		}
		d.p.Fprintf(d.out, "val = %d\n", v)
		return nil
	})
	eg.Go(func() error {
		for i := range d.cfg.iterations {
			g.Set(i)
		}
		if d.cfg.threshold >= d.cfg.iterations {
			return fmt.Errorf("threshold %d never reached: last value set was %d",
				d.cfg.threshold, d.cfg.iterations-1)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	d.logger.Debug("custom mutex", "acquisitions", mu.Acquisitions())
	return nil
}

func runDetach(ctx context.Context, d *demo) error {
	fmt.Fprintln(d.out, "Starting task t1")
	h := task.Start(ctx, "t1", func(ctx context.Context) error {
		ticker := time.NewTicker(d.cfg.tick)
		defer ticker.Stop()
		for i := range 100 {
			fmt.Fprintf(d.out, "t1: %d\n", i)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		return nil
	})
	d.logger.Debug("sleeping", "linger", d.cfg.linger)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.cfg.linger):
	}
	h.Detach()
	if err := h.Join(); !errors.Is(err, task.ErrDetached) {
		return fmt.Errorf("join after detach: got %v, want %v", err, task.ErrDetached)
	}
	fmt.Fprintln(d.out, "Leaving")
	return nil
}

// syncWriter serializes writes from concurrent demo goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
