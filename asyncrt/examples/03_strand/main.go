// Example: serializing access to shared state across a ThreadPool with a
// Strand, instead of a mutex.
//
// Run with: go run ./asyncrt/examples/03_strand/
package main

import (
	"fmt"
	"sync"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/strand"
	"github.com/joeycumines/asyncrt/threadpool"
)

func main() {
	pool := threadpool.New(8)
	pool.Start()
	defer pool.Stop()

	s := strand.New(pool)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		if err := s.Submit(asyncrt.TaskFunc(func() {
			defer wg.Done()
			counter++ // safe: the strand guarantees only one task at a time
		})); err != nil {
			panic(err)
		}
	}
	wg.Wait()

	fmt.Println("final counter:", counter)
}
