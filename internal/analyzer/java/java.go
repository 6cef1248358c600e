// Package java implements the two-pass import resolution protocol for Java
// source files using dotted-package-path-to-file suffix matching.
package java

import (
	"bufio"
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

func init() {
	analyzer.Register(&Analyzer{})
}

var excludedPrefixes = []string{
	"java.", "javax.", "org.junit.", "org.mockito.",
	"org.apache.commons.", "org.apache.log4j.",
}

var importRe = regexp.MustCompile(`^import\s+(?:static\s+)?([\w.]+)(\.\*)?\s*;`)

// Index maps a trailing-slash-joined "a/b/C.java" suffix path to the file
// that declares it, and separately a basename-to-files map for the
// no-unique-suffix fallback.
type Index struct {
	bySuffixPath map[string]string
	byBasename   map[string][]string
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for Java source files.
type Analyzer struct{}

// Language returns "java".
func (a *Analyzer) Language() string { return "java" }

// Index records every file under its full repository-relative path (the
// natural suffix-matchable form) and by basename.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		bySuffixPath: make(map[string]string, len(files)),
		byBasename:   make(map[string][]string),
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		idx.bySuffixPath[f] = f
		base := f
		if i := strings.LastIndex(f, "/"); i >= 0 {
			base = f[i+1:]
		}
		idx.byBasename[base] = append(idx.byBasename[base], f)
	}
	return idx, nil
}

// Resolve extracts import statements and resolves each to a package
// directory.
func (a *Analyzer) Resolve(ctx context.Context, provider types.Provider, file string, index analyzer.Index, opts analyzer.Options) ([]analyzer.Edge, error) {
	idx, ok := index.(*Index)
	if !ok {
		return nil, nil
	}
	content, err := provider.Open(file)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		m := importRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		dotted := m[1]
		if isExcluded(dotted) {
			continue
		}
		if m[2] == ".*" {
			// wildcard package imports have no cheap resolution here;
			// usage-based inference is out of scope.
			continue
		}
		suffixPath := strings.ReplaceAll(dotted, ".", "/") + ".java"
		if target, ok := idx.bySuffixPath[suffixPath]; ok {
			weights[target] += 1
			continue
		}
		className := dotted
		if i := strings.LastIndex(className, "."); i >= 0 {
			className = className[i+1:]
		}
		if candidates, ok := idx.byBasename[className+".java"]; ok && len(candidates) > 0 {
			weights[candidates[0]] += 1
		}
	}

	edges := make([]analyzer.Edge, 0, len(weights))
	for target, weight := range weights {
		if target == file || weight <= 0 {
			continue
		}
		edges = append(edges, analyzer.Edge{From: file, To: target, Weight: weight})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	return edges, nil
}

func isExcluded(dotted string) bool {
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(dotted, p) {
			return true
		}
	}
	return false
}
