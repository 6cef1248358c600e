package golang

import (
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

// readModulePath parses the repository's go.mod, if present, and returns its
// declared module path. An unreadable or unparseable go.mod yields "", which
// callers treat as "fall back to the suffix-match heuristic".
func readModulePath(provider types.Provider) string {
	content, err := provider.Open("go.mod")
	if err != nil {
		return ""
	}
	file, err := modfile.Parse("go.mod", []byte(content), nil)
	if err != nil || file.Module == nil {
		return ""
	}
	return file.Module.Mod.Path
}

// trimModulePrefix strips modulePath from importPath and returns the
// resulting package directory ("" for the module root), along with whether
// importPath actually belongs to this module.
func trimModulePrefix(importPath, modulePath string) (string, bool) {
	if modulePath == "" {
		return "", false
	}
	if importPath == modulePath {
		return "", true
	}
	prefix := modulePath + "/"
	if !strings.HasPrefix(importPath, prefix) {
		return "", false
	}
	return strings.TrimPrefix(importPath, prefix), true
}
