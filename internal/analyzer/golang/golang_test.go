package golang

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolvePackageImportWeight(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("pkg/util/util.go", "package util\n\nfunc Helper() {}\n\nfunc Other() {}\n")
	prov.AddFile("main.go", "package main\n\nimport (\n\t\"myrepo/pkg/util\"\n)\n\nfunc main() {\n\tutil.Helper()\n\tutil.Other()\n}\n")

	a := &Analyzer{}
	files := []string{"pkg/util/util.go", "main.go"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "main.go", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].To != "pkg/util/util.go" || edges[0].Weight != 2 {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveIgnoresStdlib(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("main.go", "package main\n\nimport \"fmt\"\n\nfunc main() { fmt.Println(\"hi\") }\n")

	a := &Analyzer{}
	idx, _ := a.Index(context.Background(), prov, []string{"main.go"}, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "main.go", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges for stdlib-only import, got %+v", edges)
	}
}

func TestResolveUsesModulePathOverSuffixHeuristic(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("go.mod", "module example.com/widget\n\ngo 1.25\n")
	// Two directories share the trailing "util" segment; only the module-path
	// exact match should be picked, not whichever suffix match comes first.
	prov.AddFile("pkg/util/util.go", "package util\n\nfunc Helper() {}\n")
	prov.AddFile("vendor/other/pkg/util/util.go", "package util\n\nfunc Helper() {}\n")
	prov.AddFile("main.go", "package main\n\nimport (\n\t\"example.com/widget/pkg/util\"\n)\n\nfunc main() {\n\tutil.Helper()\n}\n")

	a := &Analyzer{}
	files := []string{"pkg/util/util.go", "vendor/other/pkg/util/util.go", "main.go"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "main.go", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "pkg/util/util.go" {
		t.Fatalf("expected the module-path match, got %+v", edges)
	}
}

func TestLoadWorkspaceConfigReadsExtraIncludeRoots(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile(".dsmconfig.hcl", `extra_include_roots = ["third_party/include", "vendor/include"]`)

	cfg := LoadWorkspaceConfig(prov)
	if len(cfg.ExtraIncludeRoots) != 2 || cfg.ExtraIncludeRoots[0] != "third_party/include" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadWorkspaceConfigAbsentFileIsZeroValue(t *testing.T) {
	prov := provider.NewFakeProvider()
	cfg := LoadWorkspaceConfig(prov)
	if len(cfg.ExtraIncludeRoots) != 0 {
		t.Fatalf("expected no extra roots, got %+v", cfg)
	}
}
