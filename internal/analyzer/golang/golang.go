// Package golang implements the two-pass import resolution protocol for Go
// source files: package-directory indexing followed by longest-suffix
// import-path resolution.
package golang

import (
	"bufio"
	"context"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

func init() {
	analyzer.Register(&Analyzer{})
}

// stdlibRoots is the known Go standard-library root-segment set used to
// classify an import path as standard library versus third-party/local.
var stdlibRoots = map[string]bool{
	"fmt": true, "os": true, "io": true, "strings": true, "strconv": true,
	"errors": true, "log": true, "time": true, "math": true, "sort": true,
	"sync": true, "context": true, "encoding": true, "net": true,
	"crypto": true, "database": true, "testing": true, "runtime": true,
	"reflect": true, "regexp": true, "bytes": true, "bufio": true,
	"flag": true, "path": true, "filepath": true,
}

var (
	importRe = regexp.MustCompile(`^\s*"([^"]+)"|^\s*\w+\s+"([^"]+)"`)
	identRe  = regexp.MustCompile(`^(func|type|var|const)\s+([A-Z]\w*)`)
)

// Index maps a package directory (repository-relative, "" for repo root) to
// the files declared in it and their exported top-level identifiers.
type Index struct {
	dirFiles   map[string][]string
	dirSymbols map[string]map[string]bool
	// modulePath is this repository's go.mod module path, when present. A
	// dotted import path under modulePath resolves to its package directory
	// by direct prefix trim rather than the longest-suffix heuristic.
	modulePath string
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for Go source files.
type Analyzer struct{}

// Language returns "go".
func (a *Analyzer) Language() string { return "go" }

// Index scans every .go file, recording its package directory and exported
// top-level identifiers.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		dirFiles:   make(map[string][]string),
		dirSymbols: make(map[string]map[string]bool),
		modulePath: readModulePath(provider),
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		dir := path.Dir(f)
		if dir == "." {
			dir = ""
		}
		idx.dirFiles[dir] = append(idx.dirFiles[dir], f)
		if idx.dirSymbols[dir] == nil {
			idx.dirSymbols[dir] = make(map[string]bool)
		}
		content, err := provider.Open(f)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(strings.NewReader(content))
		for scanner.Scan() {
			line := scanner.Text()
			if m := identRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				idx.dirSymbols[dir][m[2]] = true
			}
		}
	}
	return idx, nil
}

// Resolve extracts the import block of file and resolves each clause:
// relative forms against the importing file's directory, dotted paths by
// longest package-directory suffix match.
func (a *Analyzer) Resolve(ctx context.Context, provider types.Provider, file string, index analyzer.Index, opts analyzer.Options) ([]analyzer.Edge, error) {
	idx, ok := index.(*Index)
	if !ok {
		return nil, nil
	}
	content, err := provider.Open(file)
	if err != nil {
		return nil, err
	}
	fromDir := path.Dir(file)
	if fromDir == "." {
		fromDir = ""
	}

	edgeWeights := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(content))
	inBlock := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "import ("):
			inBlock = true
			continue
		case inBlock && line == ")":
			inBlock = false
			continue
		case inBlock:
			resolveClause(line, fromDir, idx, edgeWeights, content)
		case strings.HasPrefix(line, "import "):
			resolveClause(strings.TrimPrefix(line, "import "), fromDir, idx, edgeWeights, content)
		}
	}

	edges := make([]analyzer.Edge, 0, len(edgeWeights))
	for target, weight := range edgeWeights {
		if target == file || weight <= 0 {
			continue
		}
		edges = append(edges, analyzer.Edge{From: file, To: target, Weight: weight})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	return edges, nil
}

func resolveClause(clause string, fromDir string, idx *Index, weights map[string]int, fileContent string) {
	m := importRe.FindStringSubmatch(clause)
	if m == nil {
		return
	}
	importPath := m[1]
	if importPath == "" {
		importPath = m[2]
	}
	if importPath == "" {
		return
	}

	first := importPath
	if i := strings.Index(first, "/"); i >= 0 {
		first = first[:i]
	}
	if stdlibRoots[first] && !strings.Contains(importPath, ".") {
		return
	}

	var dir string
	var found bool
	switch {
	case strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../"):
		dir = path.Clean(path.Join(fromDir, importPath))
		if dir == "." {
			dir = ""
		}
		_, found = idx.dirFiles[dir]
	default:
		if modDir, belongsToModule := trimModulePrefix(importPath, idx.modulePath); belongsToModule {
			dir = modDir
			_, found = idx.dirFiles[dir]
		}
		if !found {
			dir, found = longestSuffixMatch(importPath, idx.dirFiles)
		}
	}
	if !found {
		return
	}

	targets := idx.dirFiles[dir]
	symbolCount := countSymbolOccurrences(fileContent, idx.dirSymbols[dir])
	for _, target := range targets {
		if symbolCount > 0 {
			weights[target] += symbolCount
		} else {
			weights[target] += 1
		}
	}
}

// longestSuffixMatch finds the package directory whose path, split on "/",
// is the longest suffix match against importPath's segments.
func longestSuffixMatch(importPath string, dirFiles map[string][]string) (string, bool) {
	importSegs := strings.Split(importPath, "/")
	bestDir := ""
	bestLen := -1
	found := false
	for dir := range dirFiles {
		dirSegs := strings.Split(dir, "/")
		if dir == "" {
			dirSegs = nil
		}
		n := suffixOverlap(importSegs, dirSegs)
		if n == 0 {
			continue
		}
		if n > bestLen {
			bestLen = n
			bestDir = dir
			found = true
		}
	}
	return bestDir, found
}

func suffixOverlap(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	if n == len(b) {
		return n
	}
	return 0
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
