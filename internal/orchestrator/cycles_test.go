package orchestrator

import (
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
)

func TestDetectCyclesFindsDirectCycle(t *testing.T) {
	files := map[string]*dsm.FileRecord{
		"a.go": {Path: "a.go", Dependencies: map[string]int{"b.go": 1}},
		"b.go": {Path: "b.go", Dependencies: map[string]int{"a.go": 1}},
	}

	cycles := detectCycles(files)
	if len(cycles) == 0 {
		t.Fatalf("expected at least one cycle")
	}
}

func TestDetectCyclesNoneOnDAG(t *testing.T) {
	files := map[string]*dsm.FileRecord{
		"a.go": {Path: "a.go", Dependencies: map[string]int{"b.go": 1}},
		"b.go": {Path: "b.go", Dependencies: map[string]int{"c.go": 1}},
		"c.go": {Path: "c.go", Dependencies: map[string]int{}},
	}

	cycles := detectCycles(files)
	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %+v", cycles)
	}
}
