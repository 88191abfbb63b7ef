// Package examples contains runnable example programs demonstrating the
// asyncrt runtime's pieces.
//
// # Examples
//
//   - 01_basic: RunLoop fundamentals
//   - 02_threadpool: ThreadPool with overload limiting and structured logging
//   - 03_strand: serializing access to shared state with a Strand
//   - 04_fiber: two fibers coordinating through fiber-aware sync primitives
//   - 05_future_pipeline: a future pipeline racing work against a timeout
//   - 06_errgroup_fanout: fanning future-backed work out with errgroup.Group
//
// # Running Examples
//
//	go run ./asyncrt/examples/01_basic/
//	go run ./asyncrt/examples/02_threadpool/
//	go run ./asyncrt/examples/03_strand/
//	go run ./asyncrt/examples/04_fiber/
//	go run ./asyncrt/examples/05_future_pipeline/
//	go run ./asyncrt/examples/06_errgroup_fanout/
package examples
