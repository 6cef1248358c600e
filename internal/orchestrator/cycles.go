package orchestrator

import (
	"sort"

	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
)

// detectCycles runs a read-only pass over the finished dependency graph to
// report directed cycles for UI highlighting. Cycle detection is kept
// separate from the graph's construction so the matrix itself never has to
// reason about cycles while still being built.
func detectCycles(files map[string]*dsm.FileRecord) [][]string {
	const visiting, visited = 1, 2
	state := make(map[string]int, len(files))
	var stack []string
	var cycles [][]string

	var visit func(path string)
	visit = func(path string) {
		state[path] = visiting
		stack = append(stack, path)

		rec, ok := files[path]
		if ok {
			for _, target := range rec.SortedDependencyTargets() {
				switch state[target] {
				case visiting:
					cycles = append(cycles, extractCycle(stack, target))
				case visited:
					continue
				default:
					visit(target)
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[path] = visited
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if state[path] == 0 {
			visit(path)
		}
	}
	return cycles
}

func extractCycle(stack []string, target string) []string {
	for i, p := range stack {
		if p == target {
			cycle := append([]string(nil), stack[i:]...)
			return append(cycle, target)
		}
	}
	return nil
}
