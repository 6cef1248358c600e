package javascript

import (
	"context"
	"testing"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
)

func TestResolveRelativeImportWeight(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("src/utils.ts", "export function add(a, b) { return a + b }\nexport function sub(a, b) { return a - b }\nexport function mul(a, b) { return a * b }\n")
	prov.AddFile("src/main.ts", "import { add, sub, mul } from './utils'\n\nadd(1, 2)\nsub(1, 2)\nmul(1, 2)\n")

	a := &Analyzer{}
	files := []string{"src/utils.ts", "src/main.ts"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	edges, err := a.Resolve(context.Background(), prov, "src/main.ts", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].To != "src/utils.ts" || edges[0].Weight != 3 {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveTSConfigAlias(t *testing.T) {
	prov := provider.NewFakeProvider()
	prov.AddFile("tsconfig.json", `{"compilerOptions":{"paths":{"@lib/*":["src/lib/*"]}}}`)
	prov.AddFile("src/lib/widget.ts", "export function render() {}\n")
	prov.AddFile("src/app.ts", "import { render } from '@lib/widget'\n\nrender()\n")

	a := &Analyzer{}
	files := []string{"src/lib/widget.ts", "src/app.ts"}
	idx, err := a.Index(context.Background(), prov, files, analyzer.Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	edges, err := a.Resolve(context.Background(), prov, "src/app.ts", idx, analyzer.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(edges) != 1 || edges[0].To != "src/lib/widget.ts" {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}
