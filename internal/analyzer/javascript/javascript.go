// Package javascript implements the two-pass import resolution protocol for
// JavaScript and TypeScript source files: relative and alias path
// resolution with an extension/index fallback chain.
package javascript

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

var extensionFallbacks = []string{
	"", ".ts", ".tsx", ".js", ".jsx",
	"/index.ts", "/index.tsx", "/index.js", "/index.jsx",
}

var (
	namedImportRe = regexp.MustCompile(`import\s+(type\s+)?\{([^}]*)\}\s+from\s+['"]([^'"]+)['"]`)
	defaultImportRe = regexp.MustCompile(`import\s+(type\s+)?(\w+)\s+from\s+['"]([^'"]+)['"]`)
	sideEffectImportRe = regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)
	requireRe     = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	exportNameRe  = regexp.MustCompile(`export\s+(?:default\s+)?(?:async\s+)?(?:function|class|const|let|var)\s+([A-Za-z_$][\w$]*)`)
)

// Index records, per file, the set of exported top-level identifiers, and
// separately the project's tsconfig-style path-alias map.
type Index struct {
	fileSet map[string]bool
	exports map[string]map[string]bool
	aliases map[string]string // alias prefix -> directory prefix
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for js/ts source files.
type Analyzer struct{}

// Language returns "javascript" (js/ts are analyzed as one partition).
func (a *Analyzer) Language() string { return "javascript" }

// Index records each file's exported identifiers and loads any
// tsconfig.json compilerOptions.paths alias mapping present at the
// repository root.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		fileSet: make(map[string]bool, len(files)),
		exports: make(map[string]map[string]bool, len(files)),
		aliases: loadTSConfigAliases(provider),
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		idx.fileSet[f] = true
		syms := make(map[string]bool)
		content, err := provider.Open(f)
		if err == nil {
			scanner := bufio.NewScanner(strings.NewReader(content))
			for scanner.Scan() {
				if m := exportNameRe.FindStringSubmatch(scanner.Text()); m != nil {
					syms[m[1]] = true
				}
			}
		}
		idx.exports[f] = syms
	}
	return idx, nil
}

// loadTSConfigAliases reads tsconfig.json's compilerOptions.paths if
// present; absence is not an error, just an empty alias set.
func loadTSConfigAliases(provider types.Provider) map[string]string {
	aliases := make(map[string]string)
	content, err := provider.Open("tsconfig.json")
	if err != nil {
		return aliases
	}
	pathsRe := regexp.MustCompile(`"([^"]+?)/\*"\s*:\s*\[\s*"([^"]+?)/\*"`)
	for _, m := range pathsRe.FindAllStringSubmatch(content, -1) {
		aliases[m[1]] = m[2]
	}
	return aliases
}

// Resolve extracts named, default, side-effect, and CommonJS require import
// clauses and resolves each against the relative-path and tsconfig-alias
// strategies.
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

	weights := make(map[string]int)

	for _, m := range namedImportRe.FindAllStringSubmatch(content, -1) {
		if m[1] != "" && !opts.IncludeTypeOnlyImports {
			continue
		}
		names := splitNamedImports(m[2])
		addClauseEdges(m[3], fromDir, idx, names, weights)
	}
	for _, m := range defaultImportRe.FindAllStringSubmatch(content, -1) {
		if m[1] != "" && !opts.IncludeTypeOnlyImports {
			continue
		}
		addClauseEdges(m[3], fromDir, idx, []string{m[2]}, weights)
	}
	for _, m := range sideEffectImportRe.FindAllStringSubmatch(content, -1) {
		addClauseEdges(m[1], fromDir, idx, nil, weights)
	}
	for _, m := range requireRe.FindAllStringSubmatch(content, -1) {
		addClauseEdges(m[1], fromDir, idx, nil, weights)
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

func splitNamedImports(clause string) []string {
	parts := strings.Split(clause, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if i := strings.Index(p, " as "); i >= 0 {
			p = strings.TrimSpace(p[:i])
		}
		names = append(names, p)
	}
	return names
}

func addClauseEdges(importPath, fromDir string, idx *Index, names []string, weights map[string]int) {
	target, ok := resolveModulePath(importPath, fromDir, idx)
	if !ok {
		return
	}
	if len(names) == 0 {
		weights[target] += 1
		return
	}
	matched := 0
	for _, name := range names {
		if idx.exports[target][name] {
			matched++
		}
	}
	if matched > 0 {
		weights[target] += matched
	} else {
		weights[target] += 1
	}
}

func resolveModulePath(importPath, fromDir string, idx *Index) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../"):
		base = path.Join(fromDir, importPath)
	default:
		matched := false
		for alias, dir := range idx.aliases {
			if importPath == alias || strings.HasPrefix(importPath, alias+"/") {
				rest := strings.TrimPrefix(importPath, alias)
				base = path.Clean(dir + rest)
				matched = true
				break
			}
		}
		if !matched {
			return "", false
		}
	}
	for _, suffix := range extensionFallbacks {
		candidate := path.Clean(base + suffix)
		if idx.fileSet[candidate] {
			return candidate, true
		}
	}
	return "", false
}
