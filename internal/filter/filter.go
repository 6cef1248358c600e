// Package filter implements the admitted-file selection and language
// partitioning stage (C2): extension allow-listing, directory deny-listing,
// and minified/bundle exclusion.
package filter

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// extensionLanguage maps a recognized source extension to its analyzer
// language tag.
var extensionLanguage = map[string]string{
	".go": "go",

	".py": "python", ".pyi": "python",

	".js": "javascript", ".jsx": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".ts": "javascript", ".tsx": "javascript",

	".java": "java",

	".cs": "csharp",

	".c": "cpp", ".h": "cpp", ".cc": "cpp", ".cpp": "cpp", ".cxx": "cpp",
	".hpp": "cpp", ".hxx": "cpp", ".hh": "cpp",
}

// deniedDirs are path segments that, if present anywhere in a file's path,
// exclude it from analysis regardless of extension.
var deniedDirs = map[string]bool{
	"node_modules": true, "bower_components": true, "vendor": true,
	"dist": true, "build": true, ".git": true, "coverage": true,
	"__pycache__": true, ".venv": true, "venv": true,
}

// minifiedGlobs match generated/bundled artifacts that happen to carry a
// recognized extension but should never be analyzed as hand-written source.
var minifiedGlobs = []string{"*.min.js", "*.bundle.js", "*.min.css"}

// Options controls filtering behavior beyond the fixed allow/deny tables.
type Options struct {
	// IncludeTests, when false, does not itself exclude test files — test
	// inclusion is a per-language analyzer concern, not a blanket exclusion
	// at the filter stage — but is threaded through so future deny rules
	// can consult it.
	IncludeTests bool
}

// Partition splits an admitted file list by language tag, applying the
// directory deny-list and minified-file exclusion along the way. Files with
// an unrecognized extension, or matching a deny rule, are dropped entirely
// rather than tagged "other": weight rules only apply to the six supported
// language families.
func Partition(files []string, opts Options) map[string][]string {
	partitions := make(map[string][]string)
	for _, f := range files {
		if !Admit(f) {
			continue
		}
		lang, ok := extensionLanguage[strings.ToLower(path.Ext(f))]
		if !ok {
			continue
		}
		partitions[lang] = append(partitions[lang], f)
	}
	return partitions
}

// Admit reports whether a repository-relative path survives the directory
// deny-list and minified-bundle exclusion. It does not check extension.
func Admit(file string) bool {
	for _, segment := range strings.Split(file, "/") {
		if deniedDirs[segment] {
			return false
		}
	}
	base := path.Base(file)
	for _, pattern := range minifiedGlobs {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return false
		}
	}
	return true
}
