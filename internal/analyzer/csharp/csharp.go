// Package csharp implements the two-pass import resolution protocol for C#
// source files using namespace-declaration indexing.
package csharp

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

var (
	namespaceRe  = regexp.MustCompile(`^\s*namespace\s+([\w.]+)`)
	usingRe      = regexp.MustCompile(`^\s*using\s+(static\s+)?(?:(\w+)\s*=\s*)?([\w.]+)\s*;`)
	classNameRe  = regexp.MustCompile(`\b(?:class|interface|struct|record|enum)\s+([A-Za-z_]\w*)`)
)

// Index maps namespace-qualified declared types (e.g. "N.Foo" for class Foo
// in namespace N) and namespaces to their declaring files.
type Index struct {
	// byQualifiedName maps "Namespace.ClassName" to the declaring file.
	byQualifiedName map[string]string
	// byNamespace maps a namespace to every file declared within it.
	byNamespace map[string][]string
	// fileSymbols maps a file to the unqualified type names it declares, used
	// to weight a namespace-level using by how much of the namespace the
	// importer actually references.
	fileSymbols   map[string]map[string]bool
	rootNamespace string
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for C# source files.
type Analyzer struct{}

// Language returns "csharp".
func (a *Analyzer) Language() string { return "csharp" }

// Index extracts each file's first namespace declaration and its declared
// type names, and heuristically discovers the project's root namespace as
// the most common top-level namespace segment.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		byQualifiedName: make(map[string]string),
		byNamespace:     make(map[string][]string),
		fileSymbols:     make(map[string]map[string]bool),
	}
	rootCounts := make(map[string]int)
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		content, err := provider.Open(f)
		if err != nil {
			continue
		}
		var namespace string
		scanner := bufio.NewScanner(strings.NewReader(content))
		for scanner.Scan() {
			line := scanner.Text()
			if m := namespaceRe.FindStringSubmatch(line); m != nil {
				namespace = m[1]
				break
			}
		}
		if namespace == "" {
			continue
		}
		idx.byNamespace[namespace] = append(idx.byNamespace[namespace], f)
		if root := strings.SplitN(namespace, ".", 2)[0]; root != "" {
			rootCounts[root]++
		}
		syms := make(map[string]bool)
		for _, m := range classNameRe.FindAllStringSubmatch(content, -1) {
			idx.byQualifiedName[namespace+"."+m[1]] = f
			syms[m[1]] = true
		}
		idx.fileSymbols[f] = syms
	}
	best, bestCount := "", 0
	for root, count := range rootCounts {
		if count > bestCount {
			best, bestCount = root, count
		}
	}
	idx.rootNamespace = best
	return idx, nil
}

// Resolve extracts using directives and resolves each against the
// namespace index.
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
		m := usingRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		target := m[3]
		if isExcludedNamespace(target, idx.rootNamespace) {
			continue
		}
		if f, ok := idx.byQualifiedName[target]; ok {
			weights[f] += 1
			continue
		}
		for _, f := range idx.byNamespace[target] {
			symbolCount := countSymbolOccurrences(content, idx.fileSymbols[f])
			if symbolCount > 0 {
				weights[f] += symbolCount
			} else {
				weights[f] += 1
			}
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

func countSymbolOccurrences(content string, symbols map[string]bool) int {
	count := 0
	for sym := range symbols {
		count += countWholeWordOccurrences(content, sym)
	}
	return count
}

func countWholeWordOccurrences(s, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	idx := strings.Index(s, word)
	for idx >= 0 {
		before := idx == 0 || !isIdentChar(rune(s[idx-1]))
		afterIdx := idx + len(word)
		after := afterIdx >= len(s) || !isIdentChar(rune(s[afterIdx]))
		if before && after {
			count++
		}
		next := strings.Index(s[idx+1:], word)
		if next < 0 {
			break
		}
		idx = idx + 1 + next
	}
	return count
}

func isIdentChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isExcludedNamespace(ns, rootNamespace string) bool {
	if rootNamespace != "" && (ns == rootNamespace || strings.HasPrefix(ns, rootNamespace+".")) {
		return false
	}
	switch {
	case strings.HasPrefix(ns, "System"):
		return true
	case strings.HasPrefix(ns, "Microsoft."):
		return true
	case strings.HasPrefix(ns, "Xunit"):
		return true
	case strings.HasPrefix(ns, "Moq"):
		return true
	}
	return false
}
