package main

import (
	"fmt"
	"sync"
)

// heading Taking turns

// note
// No mutex around count this time.
// Instead the goroutines pass a turn back and forth,
// and only the goroutine holding the turn touches count.
// !note

// div.flex
// code
type B struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready bool
}

func NewB() *B {
	b := &B{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *B) Wait() {
	b.mu.Lock()
	// em
	for !b.ready {
		b.cond.Wait()
	}
	// !em
	b.ready = false
	b.mu.Unlock()
}

func (b *B) Signal() {
	b.mu.Lock()
	b.ready = true
	b.mu.Unlock()
	b.cond.Signal()
}

// !code
// code
var count int

func worker(b *B, n int) {
	for range n {
		b.Wait()
		read := count
		count = read + 1
		b.Signal()
	}
}

func main() {
	b := NewB()
	var wg sync.WaitGroup
	wg.Go(func() { worker(b, 100_000) })
	wg.Go(func() { worker(b, 100_000) })
	b.Signal() // em b.Signal()
	wg.Wait()
	fmt.Println(count)
}

// !code
// !div.flex

// question
// - Why `for` and not `if` around `cond.Wait`?
// - What happens without the `Signal` in `main`?
// answer
// - A wake-up does not mean `ready` is true: another goroutine
//   may have taken the turn first.
// - Both workers wait for each other forever.
// !question

// heading More workers?

// text
// What if we start five workers and call `Signal` five times?
// !text

// question
// Is `count` still correct?
// answer
// Only by luck. `ready` is a bool, so signals don't add up,
// but a `Signal` from `main` can arrive while a worker holds the turn.
// Then a second worker gets in.
// !question
