package main

import (
	"fmt"
	"sync"
)

// heading Any Locker will do

// text
// `sync.NewCond` takes a `sync.Locker`: anything with `Lock` and `Unlock`.
// !text

// div.flex
// code
type MyMutex struct {
	mu sync.Mutex
}

func (m *MyMutex) Lock()   { m.mu.Lock() }
func (m *MyMutex) Unlock() { m.mu.Unlock() }

var (
	countMu MyMutex
	countCV = sync.NewCond(&countMu) // em &countMu
	count   int
)

// !code
// code
func waiter(done chan<- int) {
	countMu.Lock()
	for count < 10_000 {
		countCV.Wait() // unlocks, sleeps, relocks
	}
	val := count
	countMu.Unlock()
	done <- val
}

func main() {
	done := make(chan int)
	go waiter(done)
	for i := range 100_000 {
		countMu.Lock()
		count = i
		countMu.Unlock()
		countCV.Signal()
	}
	fmt.Println("val =", <-done)
}

// !code
// !div.flex

// output
// val = 10007
// !output

// question
// Why isn't `val` exactly 10000?
// answer
// `main` keeps going after `Signal`.
// By the time the waiter relocks, `count` has moved on.
// !question
