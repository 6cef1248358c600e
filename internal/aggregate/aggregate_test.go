package aggregate

import (
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestAggregateBuildsRecordsAndBackfillsTargets(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("a.go", "package main\n\nfunc main() {}\n")
	prov.AddFile("b.go", "package main\n\nfunc Helper() {}\n")

	agg := New(prov)
	results := []LanguageResult{
		{
			Language: "go",
			Files:    []string{"a.go", "b.go"},
			Edges:    []analyzer.Edge{{From: "a.go", To: "b.go", Weight: 2}},
		},
	}

	files := agg.Aggregate(results)
	if len(files) != 2 {
		t.Fatalf("expected 2 records, got %d", len(files))
	}
	a, ok := files["a.go"]
	if !ok {
		t.Fatalf("missing record for a.go")
	}
	if a.Dependencies["b.go"] != 2 {
		t.Fatalf("expected weight 2, got %d", a.Dependencies["b.go"])
	}
	if a.Language != "go" {
		t.Fatalf("expected language go, got %s", a.Language)
	}
}

func TestAggregateBackfillsUnlistedEdgeTargets(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("a.go", "package main\n\nfunc main() {}\n")

	agg := New(prov)
	results := []LanguageResult{
		{
			Language: "go",
			Files:    []string{"a.go"},
			Edges:    []analyzer.Edge{{From: "a.go", To: "vendor/lib.go", Weight: 1}},
		},
	}

	files := agg.Aggregate(results)
	target, ok := files["vendor/lib.go"]
	if !ok {
		t.Fatalf("expected backfilled record for edge target")
	}
	if target.Language != dsm.UnknownLanguage {
		t.Fatalf("expected unknown language, got %s", target.Language)
	}
}
