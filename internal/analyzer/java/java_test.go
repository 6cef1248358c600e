package java

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolveDottedImport(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("com/acme/util/Helper.java", "package com.acme.util;\n\npublic class Helper {}\n")
	prov.AddFile("com/acme/app/Main.java", "package com.acme.app;\n\nimport com.acme.util.Helper;\n\npublic class Main {}\n")

	a := &Analyzer{}
	files := []string{"com/acme/util/Helper.java", "com/acme/app/Main.java"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "com/acme/app/Main.java", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "com/acme/util/Helper.java" || edges[0].Weight != 1 {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}

func TestResolveDropsWildcardAndExcluded(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("com/acme/app/Main.java", "package com.acme.app;\n\nimport java.util.List;\nimport com.acme.util.*;\nimport org.junit.Test;\n\npublic class Main {}\n")

	a := &Analyzer{}
	idx, _ := a.Index(context.Background(), prov, []string{"com/acme/app/Main.java"}, analyzer.Options{})
	edges, err := a.Resolve(context.Background(), prov, "com/acme/app/Main.java", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %+v", edges)
	}
}
