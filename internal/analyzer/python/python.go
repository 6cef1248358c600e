// Package python implements the two-pass import resolution protocol for
// Python source files using dotted-module-path matching.
package python

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

var stdlibAndCommonRoots = map[string]bool{
	"sys": true, "os": true, "re": true, "json": true, "datetime": true,
	"collections": true, "typing": true, "pathlib": true, "io": true,
	"time": true, "random": true, "math": true, "logging": true,
	"unittest": true, "argparse": true, "subprocess": true, "threading": true,
	"multiprocessing": true, "asyncio": true, "django": true, "flask": true,
	"numpy": true, "pandas": true, "requests": true, "pytest": true,
	"sqlalchemy": true, "redis": true, "celery": true, "boto3": true,
	"pydantic": true,
}

var (
	fromImportRe = regexp.MustCompile(`^from\s+(\.*[\w.]*)\s+import\s+(.+)$`)
	plainImportRe = regexp.MustCompile(`^import\s+(\.*[\w.]+)`)
	defClassRe   = regexp.MustCompile(`^(def|class)\s+([A-Za-z_]\w*)`)
)

// Index maps a dotted module path (derived from a file's repository-relative
// path, minus the .py extension and __init__ segment) to its file, and
// records each module's top-level def/class symbols.
type Index struct {
	moduleToFile map[string]string
	symbols      map[string]map[string]bool
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for Python source files.
type Analyzer struct{}

// Language returns "python".
func (a *Analyzer) Language() string { return "python" }

func toModulePath(file string) string {
	trimmed := strings.TrimSuffix(file, ".py")
	trimmed = strings.TrimSuffix(trimmed, "/__init__")
	return strings.ReplaceAll(trimmed, "/", ".")
}

// Index builds the module-path-to-file map and each module's symbol set.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		moduleToFile: make(map[string]string, len(files)),
		symbols:      make(map[string]map[string]bool, len(files)),
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		module := toModulePath(f)
		idx.moduleToFile[module] = f
		syms := make(map[string]bool)
		content, err := provider.Open(f)
		if err == nil {
			scanner := bufio.NewScanner(strings.NewReader(content))
			for scanner.Scan() {
				if m := defClassRe.FindStringSubmatch(strings.TrimSpace(scanner.Text())); m != nil {
					syms[m[2]] = true
				}
			}
		}
		idx.symbols[module] = syms
	}
	return idx, nil
}

// Resolve extracts import statements and resolves each against the
// dotted-module index.
func (a *Analyzer) Resolve(ctx context.Context, provider types.Provider, file string, index analyzer.Index, opts analyzer.Options) ([]analyzer.Edge, error) {
	idx, ok := index.(*Index)
	if !ok {
		return nil, nil
	}
	content, err := provider.Open(file)
	if err != nil {
		return nil, err
	}
	fromModule := toModulePath(file)

	weights := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := fromImportRe.FindStringSubmatch(line); m != nil {
			resolveFromImport(m[1], m[2], fromModule, content, idx, weights)
		} else if m := plainImportRe.FindStringSubmatch(line); m != nil {
			resolvePlainImport(m[1], idx, weights)
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

func resolveFromImport(moduleExpr, importList, fromModule, importerContent string, idx *Index, weights map[string]int) {
	var targetModule string
	if strings.HasPrefix(moduleExpr, ".") {
		dots := 0
		for dots < len(moduleExpr) && moduleExpr[dots] == '.' {
			dots++
		}
		rest := moduleExpr[dots:]
		base := packagePrefix(fromModule, dots)
		if rest == "" {
			targetModule = base
		} else if base == "" {
			targetModule = rest
		} else {
			targetModule = base + "." + rest
		}
	} else {
		first := moduleExpr
		if i := strings.Index(first, "."); i >= 0 {
			first = first[:i]
		}
		if stdlibAndCommonRoots[first] {
			return
		}
		targetModule = moduleExpr
	}

	candidates := candidateModules(targetModule, idx)
	if len(candidates) == 0 {
		return
	}

	names := parseImportNames(importList)
	if len(names) == 0 {
		for _, c := range candidates {
			symbolCount := countSymbolOccurrences(importerContent, idx.symbols[c])
			if symbolCount > 0 {
				weights[idx.moduleToFile[c]] += symbolCount
			} else {
				weights[idx.moduleToFile[c]] += 1
			}
		}
		return
	}

	for _, name := range names {
		attributed := false
		for _, c := range candidates {
			if idx.symbols[c][name] {
				weights[idx.moduleToFile[c]] += 1
				attributed = true
			}
		}
		if !attributed {
			for _, c := range candidates {
				weights[idx.moduleToFile[c]] += 1
			}
		}
	}
}

func resolvePlainImport(moduleExpr string, idx *Index, weights map[string]int) {
	first := moduleExpr
	if i := strings.Index(first, "."); i >= 0 {
		first = first[:i]
	}
	if stdlibAndCommonRoots[first] {
		return
	}
	for _, c := range candidateModules(moduleExpr, idx) {
		weights[idx.moduleToFile[c]] += 1
	}
}

func candidateModules(target string, idx *Index) []string {
	var out []string
	for module := range idx.moduleToFile {
		if module == target || strings.HasPrefix(module, target+".") {
			out = append(out, module)
		}
	}
	sort.Strings(out)
	return out
}

// packagePrefix strips the trailing `dots` path segments from fromModule.
// The first dot removes the module's own leaf (the file itself is not a
// package), so one dot yields the containing package, matching Python's
// relative-import semantics.
func packagePrefix(fromModule string, dots int) string {
	segs := strings.Split(fromModule, ".")
	drop := dots
	if len(segs) < drop {
		drop = len(segs)
	}
	segs = segs[:len(segs)-drop]
	return strings.Join(segs, ".")
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

func parseImportNames(importList string) []string {
	importList = strings.Trim(importList, "() ")
	if importList == "*" {
		return nil
	}
	parts := strings.Split(importList, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields := strings.Fields(p)
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}
