package orchestrator

import "testing"

func TestWorkerPoolSizeAtLeastOne(t *testing.T) {
	if n := workerPoolSize(); n < 1 {
		t.Fatalf("expected at least 1 worker, got %d", n)
	}
}

func TestDedupePreservesOrderAndDropsRepeats(t *testing.T) {
	got := dedupe([]string{"a.go", "b.go", "a.go", "c.go", "b.go"})
	want := []string{"a.go", "b.go", "c.go"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
