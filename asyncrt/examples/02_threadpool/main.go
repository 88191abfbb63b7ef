// Example: ThreadPool with overload protection and structured logging.
//
// Run with: go run ./asyncrt/examples/02_threadpool/
package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/rtlog"
	"github.com/joeycumines/asyncrt/threadpool"
)

func main() {
	logger := rtlog.Default()

	pool := threadpool.New(4,
		threadpool.WithLogger(logger),
		threadpool.WithOverloadRateLimit(map[time.Duration]int{time.Second: 1000}),
		threadpool.WithPanicHandler(func(r any) {
			logger.Error("recovered panic", "value", r)
		}),
	)
	pool.Start()
	defer pool.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		if err := asyncrt.SubmitFunc(pool, func() {
			defer wg.Done()
			if i == 7 {
				panic("synthetic failure for the panic handler demo")
			}
			fmt.Printf("worker handled job %d\n", i)
		}); err != nil {
			logger.Error("submit failed", "err", err)
		}
	}
	wg.Wait()
}
