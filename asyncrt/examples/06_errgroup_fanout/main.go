// Example: fanning future.Spawn work out across goroutines with
// errgroup.Group, so a single failure cancels the rest of the batch.
//
// Run with: go run ./asyncrt/examples/06_errgroup_fanout/
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeycumines/asyncrt/future"
	"github.com/joeycumines/asyncrt/threadpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	pool := threadpool.New(4)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]int, 6)

	for i := range results {
		i := i
		g.Go(func() error {
			f := future.Spawn(pool, func() int {
				if i == 4 {
					panic("simulated bad input")
				}
				time.Sleep(time.Duration(i) * 10 * time.Millisecond)
				return i * i
			}).Via(pool)

			r := future.Get(f)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !r.IsOk() {
				return fmt.Errorf("worker %d: %w", i, r.Error())
			}
			results[i] = r.Value()
			return nil
		})
	}

	err := g.Wait()
	var rtErr future.Error
	if err != nil && errors.As(err, &rtErr) {
		fmt.Println("group failed with a future error:", rtErr)
	} else if err != nil {
		fmt.Println("group failed:", err)
	}
	fmt.Println("partial results:", results)
}
