package threadpool

import "runtime"

// goroutineID returns the current goroutine's ID, parsed out of the
// "goroutine N [...]" header runtime.Stack always writes first. This is the
// same trick eventloop.getGoroutineID uses to recognize its own driving
// goroutine; here it backs Current()'s worker-affinity lookup.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id int64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + int64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
