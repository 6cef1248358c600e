// Package analyzer defines the two-pass per-language import resolution
// protocol (C3) and the registry that dispatches a file set to the analyzer
// registered for its language tag.
package analyzer

import (
	"context"
	"sort"
	"sync"

	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

// Edge is one resolved import: a directed, weighted reference from a source
// file to a target file, both repository-relative paths.
type Edge struct {
	From   string
	To     string
	Weight int
}

// Options controls behavior that is shared across all language analyzers.
type Options struct {
	// IncludeTests is carried through from the run's configuration. No
	// analyzer reads it and internal/filter does not exclude test files, so
	// test files participate in indexing and resolution whatever its value.
	IncludeTests bool
	// IncludeTypeOnlyImports, when false, drops edges that only resolved
	// through a type-only import clause (TypeScript `import type`). Only the
	// javascript analyzer distinguishes type-only imports; the others
	// ignore this flag.
	IncludeTypeOnlyImports bool
	// LargeRepoThreshold is the file count, within a single language
	// partition, above which every resolved edge collapses to weight 1
	// (the large-repo fast path).
	LargeRepoThreshold int
	// ExtraIncludeRoots are additional repository-relative directories the
	// c/c++ resolver searches, on top of its built-in common roots, sourced
	// from an optional repo-level HCL workspace config.
	ExtraIncludeRoots []string
}

// Analyzer implements the two-pass protocol for one language family. Index
// must complete for every file of a language partition before Resolve is
// called for any file of that partition; different languages may run
// concurrently. Callers enforce this barrier, not the Analyzer
// implementation.
type Analyzer interface {
	// Language returns the tag this analyzer claims (must match a tag
	// internal/filter produces).
	Language() string

	// Index builds whatever per-repository symbol/package/namespace index
	// this language needs to resolve imports in the Resolve pass. files are
	// repository-relative paths already filtered to this language.
	Index(ctx context.Context, provider types.Provider, files []string, opts Options) (Index, error)

	// Resolve computes the outbound import edges for a single file against
	// the index built by Index. It must not mutate the index.
	Resolve(ctx context.Context, provider types.Provider, file string, index Index, opts Options) ([]Edge, error)
}

// Index is an opaque per-language artifact threaded from the Index pass
// into the Resolve pass. Each language analyzer defines its own concrete
// type satisfying this marker interface.
type Index interface {
	isAnalyzerIndex()
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Analyzer{}
)

// Register adds an analyzer to the package-level registry, keyed by its
// Language(). Intended to be called from language subpackage init()
// functions; panics on a duplicate registration since that indicates two
// analyzers claiming the same language tag.
func Register(a Analyzer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	lang := a.Language()
	if _, exists := registry[lang]; exists {
		panic("analyzer: duplicate registration for language " + lang)
	}
	registry[lang] = a
}

// Lookup returns the analyzer registered for lang, if any.
func Lookup(lang string) (Analyzer, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[lang]
	return a, ok
}

// Languages returns the sorted list of currently-registered language tags.
func Languages() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	langs := make([]string, 0, len(registry))
	for lang := range registry {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ApplyLargeRepoFastPath collapses every edge's weight to 1 when the
// partition it was computed against exceeds opts.LargeRepoThreshold files.
func ApplyLargeRepoFastPath(edges []Edge, partitionSize int, opts Options) []Edge {
	threshold := opts.LargeRepoThreshold
	if threshold <= 0 {
		threshold = 100
	}
	if partitionSize <= threshold {
		return edges
	}
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{From: e.From, To: e.To, Weight: 1}
	}
	return out
}
