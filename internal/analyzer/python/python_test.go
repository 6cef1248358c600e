package python

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolveWildcardImportWeight(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("pkg/helpers.py", "def alpha():\n    pass\n\ndef beta():\n    pass\n\ndef gamma():\n    pass\n")
	prov.AddFile("app.py", "from pkg.helpers import *\n\nalpha()\nbeta()\ngamma()\n")

	a := &Analyzer{}
	files := []string{"pkg/helpers.py", "app.py"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "app.py", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].To != "pkg/helpers.py" || edges[0].Weight != 3 {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveRelativeImportDotCounting(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("pkg/sub/target.py", "def thing():\n    pass\n")
	prov.AddFile("pkg/sub/caller.py", "from . import target\n\ntarget.thing()\n")

	a := &Analyzer{}
	files := []string{"pkg/sub/target.py", "pkg/sub/caller.py"}
	idx, _ := a.Index(context.Background(), prov, files, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "pkg/sub/caller.py", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "pkg/sub/target.py" {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}

func TestResolveIgnoresStdlibAndThirdParty(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("app.py", "import os\nimport requests\n")

	a := &Analyzer{}
	idx, _ := a.Index(context.Background(), prov, []string{"app.py"}, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "app.py", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %+v", edges)
	}
}
