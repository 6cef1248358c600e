// Package dsm defines the core data model shared by every phase of the
// analysis pipeline: the per-file record, the directory hierarchy item, and
// the final Design Structure Matrix payload.
package dsm

import "sort"

// UnknownLanguage is the language tag attached to a file that no filter rule
// or analyzer claimed.
const UnknownLanguage = "unknown"

// FileRecord is one row/column of the matrix. Dependencies maps a target
// repository-relative path to the number of distinct imported symbols
// resolved against that target (the cell weight). Self-edges are never
// present; every key is expected to also be a FileRecord in the same run.
type FileRecord struct {
	Path         string
	Language     string
	LineCount    int
	Complexity   int
	Dependencies map[string]int
}

// NewFileRecord creates an empty record for path with the unknown language.
func NewFileRecord(path string) *FileRecord {
	return &FileRecord{
		Path:         path,
		Language:     UnknownLanguage,
		Dependencies: make(map[string]int),
	}
}

// AddDependency accumulates weight onto an edge to target, dropping the edge
// entirely if target equals the record's own path (self-edges are not
// representable).
func (f *FileRecord) AddDependency(target string, weight int) {
	if weight <= 0 || target == f.Path {
		return
	}
	if f.Dependencies == nil {
		f.Dependencies = make(map[string]int)
	}
	f.Dependencies[target] += weight
}

// SortedDependencyTargets returns the record's dependency targets sorted
// lexicographically, for deterministic serialization.
func (f *FileRecord) SortedDependencyTargets() []string {
	targets := make([]string, 0, len(f.Dependencies))
	for t := range f.Dependencies {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// DisplayItem is one node of the pre-order flattened directory/file tree.
type DisplayItem struct {
	Path        string
	DisplayName string
	IndentLevel int
	IsDirectory bool
	OutlineID   string
	FileIndices []int
}

// DSMPayload is the complete, deterministic result of one analysis run.
type DSMPayload struct {
	Files        map[string]*FileRecord
	DisplayItems []DisplayItem
	FileList     []string
	Branch       string
}

// NewDSMPayload creates an empty payload ready to be populated by the
// aggregator and hierarchy builder.
func NewDSMPayload(branch string) *DSMPayload {
	return &DSMPayload{
		Files:  make(map[string]*FileRecord),
		Branch: branch,
	}
}

// AuxMetadata carries supplementary run information that the matrix
// payload itself never references: it rides alongside a DSMPayload but is
// not part of it.
type AuxMetadata struct {
	Licenses  []string
	Cycles    [][]string
	CodeStats interface{}
	Run       interface{}
}
