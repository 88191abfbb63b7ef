// Example: two fibers coordinating through a fiber-aware Mutex and Event,
// both resumed by a ThreadPool.
//
// Run with: go run ./asyncrt/examples/04_fiber/
package main

import (
	"fmt"
	"sync"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/fiber"
	"github.com/joeycumines/asyncrt/threadpool"
)

func main() {
	pool := threadpool.New(4)
	pool.Start()
	defer pool.Stop()

	var mu fiber.Mutex
	var ready fiber.Event
	var wg sync.WaitGroup

	wg.Add(1)
	asyncrt.SubmitFunc(pool, func() {
		f := fiber.New(func(self *fiber.Fiber) {
			mu.Lock(self, pool)
			fmt.Println("producer: preparing data")
			mu.Unlock()
			ready.Set()
			wg.Done()
		})
		f.Resume()
	})

	wg.Add(1)
	asyncrt.SubmitFunc(pool, func() {
		f := fiber.New(func(self *fiber.Fiber) {
			ready.Wait(self, pool)
			mu.Lock(self, pool)
			fmt.Println("consumer: data is ready")
			mu.Unlock()
			wg.Done()
		})
		f.Resume()
	})

	wg.Wait()
}
