package main

import (
	"fmt"
	"sync"
)

// heading Two goroutines, one counter

// text
// `c++` is a read, an add and a write.
// Two goroutines can read the same value and both write it back plus one.
// !text

// div.flex
// code
type A struct {
	count int
}

func main() {
	var a A
	var wg sync.WaitGroup
	wg.Go(func() { count(&a) })
	wg.Go(func() { count(&a) })
	wg.Wait()
	fmt.Println(a.count)
}

func count(a *A) {
	for range 1_000_000 {
		read := a.count // em read
		a.count = read + 1
	}
}

// !code
// output
// 1084617
// !output
// !div.flex

// question
// Why is the result less than 2,000,000?
// answer
// | G1 | G2 |
// | -- | -- |
// | read = 41 | |
// | | read = 41 |
// | count = 42 | |
// | | count = 42 |
//
// One increment is lost. `go run -race .` reports the race.
// !question
