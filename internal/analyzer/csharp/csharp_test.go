package csharp

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolveNamespaceUsing(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("Acme/Util/Basket.cs", "namespace Acme.Util;\n\npublic class Basket {}\n")
	prov.AddFile("Acme/App/Program.cs", "namespace Acme.App;\n\nusing Acme.Util;\n\npublic class Program {\n    Basket a = new Basket();\n    Basket b;\n}\n")

	a := &Analyzer{}
	files := []string{"Acme/Util/Basket.cs", "Acme/App/Program.cs"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "Acme/App/Program.cs", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].To != "Acme/Util/Basket.cs" || edges[0].Weight != 3 {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveQualifiedUsing(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("Acme/Util/Helper.cs", "namespace Acme.Util;\n\npublic class Helper {}\n")
	prov.AddFile("Acme/App/Program.cs", "namespace Acme.App;\n\nusing static Acme.Util.Helper;\n\npublic class Program {}\n")

	a := &Analyzer{}
	files := []string{"Acme/Util/Helper.cs", "Acme/App/Program.cs"}
	idx, _ := a.Index(context.Background(), prov, files, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "Acme/App/Program.cs", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "Acme/Util/Helper.cs" {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}

func TestResolveExcludesSystemNamespace(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("Acme/App/Program.cs", "namespace Acme.App;\n\nusing System;\nusing System.Collections.Generic;\n\npublic class Program {}\n")

	a := &Analyzer{}
	idx, _ := a.Index(context.Background(), prov, []string{"Acme/App/Program.cs"}, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "Acme/App/Program.cs", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %+v", edges)
	}
}
