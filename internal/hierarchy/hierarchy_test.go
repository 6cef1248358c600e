package hierarchy

import (
	"reflect"
	"testing"
)

func TestBuildMatchesSpecExample(t *testing.T) {
	files := []string{"a/x.ts", "a/y.ts", "b/z.ts"}
	items, fileList := Build(files)

	if !reflect.DeepEqual(fileList, files) {
		t.Fatalf("file list should preserve input order, got %v", fileList)
	}

	wantOutlines := []string{"1", "1.1", "1.2", "2", "2.1"}
	wantDirs := []bool{true, false, false, true, false}
	wantIndents := []int{0, 1, 1, 0, 1}

	if len(items) != len(wantOutlines) {
		t.Fatalf("expected %d display items, got %d: %+v", len(wantOutlines), len(items), items)
	}
	for i, item := range items {
		if item.OutlineID != wantOutlines[i] {
			t.Errorf("item %d: outline = %q, want %q", i, item.OutlineID, wantOutlines[i])
		}
		if item.IsDirectory != wantDirs[i] {
			t.Errorf("item %d: is_directory = %v, want %v", i, item.IsDirectory, wantDirs[i])
		}
		if item.IndentLevel != wantIndents[i] {
			t.Errorf("item %d: indent = %d, want %d", i, item.IndentLevel, wantIndents[i])
		}
	}
}

func TestBuildDirectoryFileIndicesCoverSubtree(t *testing.T) {
	files := []string{"a/x.ts", "a/y.ts", "b/z.ts"}
	items, _ := Build(files)

	for _, item := range items {
		if item.Path == "a" {
			if !reflect.DeepEqual(item.FileIndices, []int{0, 1}) {
				t.Errorf("dir a file_indices = %v, want [0 1]", item.FileIndices)
			}
		}
		if item.Path == "b" {
			if !reflect.DeepEqual(item.FileIndices, []int{2}) {
				t.Errorf("dir b file_indices = %v, want [2]", item.FileIndices)
			}
		}
	}
}
