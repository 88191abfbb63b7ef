// Example: Basic RunLoop Usage
//
// Demonstrates the fundamental asyncrt workflow: start a RunLoop, submit
// Tasks to it from another goroutine, and stop it once the work is done.
//
// Run with: go run ./asyncrt/examples/01_basic/
package main

import (
	"fmt"
	"sync"

	"github.com/joeycumines/asyncrt"
)

func main() {
	loop := asyncrt.NewRunLoop()
	loop.Start()
	defer loop.Stop()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 1; i <= 3; i++ {
		i := i
		if err := asyncrt.SubmitFunc(loop, func() {
			defer wg.Done()
			fmt.Printf("task %d running on the loop goroutine\n", i)
		}); err != nil {
			panic(err)
		}
	}
	wg.Wait()
}
