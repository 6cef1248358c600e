// Package cpp implements the two-pass import resolution protocol for C/C++
// source files: a multi-strategy include-path search.
package cpp

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

var commonIncludeRoots = []string{"include", "src", "lib", "common", "inc", "headers"}

var stdlibHeaderRe = regexp.MustCompile(`^(c?(std|assert|ctype|errno|fenv|float|inttypes|limits|locale|math|setjmp|signal|stdarg|stdbool|stddef|stdint|stdio|stdlib|string|time|wchar|wctype)[\w]*|` +
	`(algorithm|array|atomic|bitset|chrono|complex|condition_variable|deque|exception|filesystem|forward_list|fstream|functional|future|initializer_list|iomanip|ios|iosfwd|iostream|istream|iterator|limits|list|map|memory|mutex|new|numeric|optional|ostream|queue|random|ratio|regex|scoped_allocator|set|shared_mutex|sstream|stack|stdexcept|string|string_view|strstream|system_error|thread|tuple|type_traits|typeindex|typeinfo|unordered_map|unordered_set|utility|valarray|variant|vector)|` +
	`(sys/[\w.]+|netinet/[\w.]+|arpa/[\w.]+|pthread\.h|unistd\.h|fcntl\.h|dirent\.h|windows\.h|winsock2\.h))$`)

var includeRe = regexp.MustCompile(`^\s*#include\s*(?:"([^"]+)"|<([^>]+)>)`)

// Index records every admitted file and a basename-to-files map for the
// suffix/basename fallback strategies.
type Index struct {
	fileSet    map[string]bool
	byBasename map[string][]string
}

func (*Index) isAnalyzerIndex() {}

// Analyzer implements analyzer.Analyzer for C/C++ source files.
type Analyzer struct{}

// Language returns "cpp".
func (a *Analyzer) Language() string { return "cpp" }

// Index builds the lookup tables Resolve needs for its ordered strategies.
func (a *Analyzer) Index(ctx context.Context, provider types.Provider, files []string, opts analyzer.Options) (analyzer.Index, error) {
	idx := &Index{
		fileSet:    make(map[string]bool, len(files)),
		byBasename: make(map[string][]string),
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return idx, ctx.Err()
		default:
		}
		idx.fileSet[f] = true
		base := path.Base(f)
		idx.byBasename[base] = append(idx.byBasename[base], f)
	}
	return idx, nil
}

// Resolve extracts #include directives and resolves each through the
// ordered include-resolution strategies.
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
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		m := includeRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		quoted := m[1] != ""
		includePath := m[1]
		if !quoted {
			includePath = m[2]
			if stdlibHeaderRe.MatchString(includePath) {
				continue
			}
		}
		if target, ok := resolveInclude(includePath, fromDir, idx, opts.ExtraIncludeRoots); ok {
			weights[target] += 1
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

func resolveInclude(includePath, fromDir string, idx *Index, extraIncludeRoots []string) (string, bool) {
	// (1) relative to importing file.
	candidate := path.Clean(path.Join(fromDir, includePath))
	if idx.fileSet[candidate] {
		return candidate, true
	}
	// (2) relative to workspace root.
	candidate = path.Clean(includePath)
	if idx.fileSet[candidate] {
		return candidate, true
	}
	// (3) relative to each common include root, plus any repo-declared
	// extra roots from .dsmconfig.hcl.
	for _, root := range append(append([]string{}, commonIncludeRoots...), extraIncludeRoots...) {
		candidate = path.Clean(path.Join(root, includePath))
		if idx.fileSet[candidate] {
			return candidate, true
		}
	}
	// (4) suffix match against any file.
	var suffixMatches []string
	for f := range idx.fileSet {
		if strings.HasSuffix(f, "/"+includePath) || f == includePath {
			suffixMatches = append(suffixMatches, f)
		}
	}
	if len(suffixMatches) == 1 {
		return suffixMatches[0], true
	}
	if len(suffixMatches) > 1 {
		sort.Strings(suffixMatches)
		return suffixMatches[0], true
	}
	// (5) unique basename match, preferring one sharing the include's
	// directory prefix when several share the same basename.
	base := path.Base(includePath)
	candidates := idx.byBasename[base]
	if len(candidates) == 1 {
		return candidates[0], true
	}
	if len(candidates) > 1 {
		prefix := path.Dir(includePath)
		for _, c := range candidates {
			if strings.HasPrefix(path.Dir(c), prefix) {
				return c, true
			}
		}
		sort.Strings(candidates)
		return candidates[0], true
	}
	return "", false
}
