// Package metadata records information about one analysis run, independent
// of the dependency matrix itself.
package metadata

import (
	"path/filepath"
	"time"
)

// RunMetadata describes the execution of one build run: where it ran,
// how long it took, and how much it covered.
type RunMetadata struct {
	Timestamp     string                 `json:"timestamp"`
	RepositoryURL string                 `json:"repository_url"`
	Branch        string                 `json:"branch"`
	SpecVersion   string                 `json:"spec_version"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	FileCount     int                    `json:"file_count,omitempty"`
	LanguageCount int                    `json:"language_count,omitempty"`
	Properties    map[string]interface{} `json:"properties,omitempty"`
}

// NewRunMetadata creates run metadata stamped with the current time.
func NewRunMetadata(repositoryURL string, version string) *RunMetadata {
	return &RunMetadata{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		RepositoryURL: filepath.ToSlash(repositoryURL),
		SpecVersion:   version,
	}
}

// SetDuration sets the run duration in milliseconds.
func (m *RunMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetFileCounts sets the admitted file count and distinct language count.
func (m *RunMetadata) SetFileCounts(fileCount, languageCount int) {
	m.FileCount = fileCount
	m.LanguageCount = languageCount
}

// SetBranch records the resolved branch name.
func (m *RunMetadata) SetBranch(branch string) {
	m.Branch = branch
}

// SetProperties attaches free-form run properties, e.g. the options that
// were in effect.
func (m *RunMetadata) SetProperties(properties map[string]interface{}) {
	if len(properties) > 0 {
		m.Properties = properties
	}
}
