package main

import (
	"fmt"
	"time"
)

// heading Fire and forget

// div.flex
// code
func t1() {
	for i := range 100 {
		fmt.Printf("t1: %d\n", i)
		time.Sleep(time.Second)
	}
}

func main() {
	fmt.Println("Starting t1")
	go t1() // em go t1()
	fmt.Println("Sleeping for 10 seconds...")
	time.Sleep(10 * time.Second)
	fmt.Println("Leaving main")
}

// !code
// output
// Starting t1
// Sleeping for 10 seconds...
// t1: 0
// t1: 1
// ...
// t1: 9
// Leaving main
// !output
// !div.flex

/* text
Every goroutine is "detached": there is no handle to join.

When `main` returns, the program exits and `t1` dies mid-loop.

To wait for it, say so: `sync.WaitGroup`, a channel, or a `Join`.
*/
