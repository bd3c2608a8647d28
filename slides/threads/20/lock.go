package main

import (
	"fmt"
	"sync"
)

// heading Locking the counter

// div.flex
// code
type A struct {
	mu    sync.Mutex // em mu    sync.Mutex
	count int
}

func main() {
	var a A
	var wg sync.WaitGroup
	wg.Go(func() { countLocked(&a) })
	wg.Go(func() { countLocked(&a) })
	wg.Wait()
	fmt.Println(a.count)
}

func countLocked(a *A) {
	for range 1_000_000 {
		// em
		a.mu.Lock()
		// !em
		read := a.count
		a.count = read + 1
		// em
		a.mu.Unlock()
		// !em
	}
}

// !code
// output
// 2000000
// !output
// !div.flex

// text
// Only one goroutine at a time is between `Lock` and `Unlock`.
// !text

// heading Half a lock is no lock

// code bad
func countUnlocked_2(a *A) {
	for range 1_000_000 {
		read := a.count // no lock
		a.count = read + 1
	}
}

// !code

// question
// One goroutine runs `countLocked`, the other `countUnlocked`. Result?
// answer
// Still less than 2,000,000.
// A mutex only excludes goroutines that lock it.
// !question
