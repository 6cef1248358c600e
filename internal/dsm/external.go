package dsm

// ExternalDependency is one entry of a file's sorted dependency list in the
// JSON wire shape.
type ExternalDependency struct {
	FileName     string `json:"file_name"`
	Dependencies int    `json:"dependencies"`
}

// ExternalFile is the wire shape of a single FileRecord.
type ExternalFile struct {
	Complexity   int                  `json:"complexity"`
	LineCount    int                  `json:"line_count"`
	Dependencies []ExternalDependency `json:"dependencies"`
}

// ExternalDisplayItem is the wire shape of a DisplayItem.
type ExternalDisplayItem struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
	Indent      int    `json:"indent"`
	IsDirectory bool   `json:"is_directory"`
	FileIndices []int  `json:"file_indices"`
	ID          string `json:"id"`
	ShowInMatrix bool  `json:"show_in_matrix"`
}

// ExternalPayload is the document the progress stream's "complete" frame
// carries.
type ExternalPayload struct {
	Files        map[string]ExternalFile `json:"files"`
	DisplayItems []ExternalDisplayItem   `json:"display_items"`
	FileList     []string                `json:"file_list"`
	Branch       string                  `json:"branch"`
}

// ToExternal renders the internal payload into the deterministic wire shape:
// dependency arrays sorted by file_name, files keyed by path, and display
// items carrying show_in_matrix=true for every node (directories included —
// the renderer decides what to collapse).
func (p *DSMPayload) ToExternal() ExternalPayload {
	out := ExternalPayload{
		Files:        make(map[string]ExternalFile, len(p.Files)),
		DisplayItems: make([]ExternalDisplayItem, 0, len(p.DisplayItems)),
		FileList:     append([]string(nil), p.FileList...),
		Branch:       p.Branch,
	}

	for path, rec := range p.Files {
		deps := make([]ExternalDependency, 0, len(rec.Dependencies))
		for _, target := range rec.SortedDependencyTargets() {
			deps = append(deps, ExternalDependency{
				FileName:     target,
				Dependencies: rec.Dependencies[target],
			})
		}
		out.Files[path] = ExternalFile{
			Complexity:   rec.Complexity,
			LineCount:    rec.LineCount,
			Dependencies: deps,
		}
	}

	for _, item := range p.DisplayItems {
		out.DisplayItems = append(out.DisplayItems, ExternalDisplayItem{
			Path:         item.Path,
			DisplayName:  item.DisplayName,
			Indent:       item.IndentLevel,
			IsDirectory:  item.IsDirectory,
			FileIndices:  append([]int(nil), item.FileIndices...),
			ID:           item.OutlineID,
			ShowInMatrix: true,
		})
	}

	return out
}
