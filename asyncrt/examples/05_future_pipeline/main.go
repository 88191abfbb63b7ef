// Example: composing a future pipeline across a ThreadPool, with a timeout
// race against an After future.
//
// Run with: go run ./asyncrt/examples/05_future_pipeline/
package main

import (
	"fmt"
	"time"

	"github.com/joeycumines/asyncrt/future"
	"github.com/joeycumines/asyncrt/threadpool"
)

func main() {
	pool := threadpool.New(4)
	pool.Start()
	defer pool.Stop()

	work := future.Spawn(pool, func() int {
		time.Sleep(20 * time.Millisecond)
		return 21
	}).Via(pool)

	doubled := future.Map(work, func(v int) int { return v * 2 })

	timeout := future.Map(future.After(time.Second).Via(pool), func(future.Unit) int { return -1 })

	winner := future.Get(future.First(doubled.InlineFuture(), timeout.InlineFuture()).InlineFuture())
	fmt.Println("result:", winner.Value())

	joined := future.Get(future.All3(
		future.Value(1).InlineFuture(),
		future.Value(2).InlineFuture(),
		future.Spawn(pool, func() int { return 3 }).Via(pool),
	).InlineFuture())
	fmt.Println("joined:", joined.Value())
}
