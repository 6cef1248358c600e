package cpp

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolveRelativeInclude(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("src/util.h", "#pragma once\nvoid helper();\n")
	prov.AddFile("src/main.cpp", "#include \"util.h\"\n#include <vector>\n\nint main() { helper(); }\n")

	a := &Analyzer{}
	files := []string{"src/util.h", "src/main.cpp"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "src/main.cpp", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].To != "src/util.h" || edges[0].Weight != 1 {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveCommonIncludeRoot(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("include/widget.h", "void render();\n")
	prov.AddFile("src/app.cpp", "#include <widget.h>\n\nint main() { render(); }\n")

	a := &Analyzer{}
	files := []string{"include/widget.h", "src/app.cpp"}
	idx, _ := a.Index(context.Background(), prov, files, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "src/app.cpp", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "include/widget.h" {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}
