package cas

import "runtime"

// ResolveWorkers returns the number of concurrent generations to allow.
// A positive value is used as is. Otherwise GOMAXPROCS is used, which
// main adjusts to the container CPU quota.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return max(runtime.GOMAXPROCS(0), 1)
}
