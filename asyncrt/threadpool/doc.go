// Package threadpool implements a fixed-size pool of worker goroutines that
// share a single task queue, following the same
// Created/Running/Stopping/Stopped lifecycle as asyncrt.RunLoop.
package threadpool
