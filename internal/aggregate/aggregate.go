// Package aggregate merges per-language analyzer output into the final
// {path -> FileRecord} mapping (C5): computing line counts, attaching
// complexity, and guaranteeing every edge target is present as a key.
package aggregate

import (
	"strings"

	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	"github.com/dsmgraph/dsm-analyzer/internal/complexity"
	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

// LanguageResult pairs a language tag with the admitted files resolved
// against it, plus the edges its analyzer produced.
type LanguageResult struct {
	Language string
	Files    []string
	Edges    []analyzer.Edge
}

// Aggregator merges per-language results into a DSMPayload's Files map.
type Aggregator struct {
	provider types.Provider
}

// New creates an Aggregator that reads file contents through provider for
// line counting.
func New(provider types.Provider) *Aggregator {
	return &Aggregator{provider: provider}
}

// Aggregate builds the final {path -> FileRecord} mapping from the
// per-language results. Every file named in results gets a record with its
// line count and complexity computed once; every edge target not already a
// key gets a bare record created for it (language "unknown", line_count 0)
// so the "every target is a key" invariant always holds.
func (a *Aggregator) Aggregate(results []LanguageResult) map[string]*dsm.FileRecord {
	records := make(map[string]*dsm.FileRecord)

	for _, result := range results {
		for _, path := range result.Files {
			if _, exists := records[path]; exists {
				continue
			}
			records[path] = a.buildRecord(path, result.Language)
		}
	}

	for _, result := range results {
		for _, edge := range result.Edges {
			src, ok := records[edge.From]
			if !ok {
				src = dsm.NewFileRecord(edge.From)
				records[edge.From] = src
			}
			src.AddDependency(edge.To, edge.Weight)
			if _, ok := records[edge.To]; !ok {
				records[edge.To] = dsm.NewFileRecord(edge.To)
			}
		}
	}

	return records
}

func (a *Aggregator) buildRecord(path, language string) *dsm.FileRecord {
	rec := dsm.NewFileRecord(path)
	rec.Language = language

	content, err := a.provider.Open(path)
	if err != nil {
		return rec
	}
	rec.LineCount = countNonBlankLines(content)
	rec.Complexity = complexity.Compute(language, content)
	return rec
}

func countNonBlankLines(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
