package orchestrator

import "runtime"

// workerPoolSize bounds the per-language resolution pass to the host's CPU
// count, matching the recommended model for CPU-bound file parsing.
func workerPoolSize() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
