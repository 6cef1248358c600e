// Package hierarchy builds the ordered directory/file display tree (C6)
// from a flat admitted-file list: path-splitting into a tree, pre-order
// flattening with lexicographically sorted siblings, and dotted-decimal
// outline IDs.
package hierarchy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
)

type node struct {
	name     string
	path     string
	isDir    bool
	children map[string]*node
	// fileIndex is this node's index into the canonical file list, valid
	// only when !isDir.
	fileIndex int
}

func newDirNode(name, path string) *node {
	return &node{name: name, path: path, isDir: true, children: make(map[string]*node)}
}

// Build constructs the ordered display-item list for files, whose ordering
// establishes each file's index in the returned file list. Build does not
// sort files itself; insertion order into the tree only affects sibling
// grouping, while outline order is always lexicographic by name.
func Build(files []string) (displayItems []dsm.DisplayItem, fileList []string) {
	root := newDirNode("", "")
	fileList = make([]string, len(files))
	indexOf := make(map[string]int, len(files))
	for i, f := range files {
		fileList[i] = f
		indexOf[f] = i
	}

	for _, f := range files {
		segs := strings.Split(f, "/")
		cur := root
		for depth, seg := range segs {
			isLeaf := depth == len(segs)-1
			child, ok := cur.children[seg]
			if !ok {
				childPath := seg
				if cur.path != "" {
					childPath = cur.path + "/" + seg
				}
				child = &node{name: seg, path: childPath, isDir: !isLeaf, children: make(map[string]*node)}
				cur.children[seg] = child
			}
			if isLeaf {
				child.isDir = false
				child.fileIndex = indexOf[f]
			}
			cur = child
		}
	}

	displayItems = make([]dsm.DisplayItem, 0, len(files)*2)
	walk(root, 0, "", &displayItems)
	return displayItems, fileList
}

// walk performs a pre-order traversal: a directory node is emitted before
// its children, siblings are visited in lexicographic order of name, and
// outline IDs are dotted-decimal, 1-indexed per sibling group.
func walk(n *node, depth int, parentOutline string, out *[]dsm.DisplayItem) {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		child := n.children[name]
		outline := strconv.Itoa(i + 1)
		if parentOutline != "" {
			outline = parentOutline + "." + outline
		}

		item := dsm.DisplayItem{
			Path:        child.path,
			DisplayName: child.name,
			IndentLevel: depth,
			IsDirectory: child.isDir,
			OutlineID:   outline,
		}
		if child.isDir {
			item.FileIndices = collectFileIndices(child)
		} else {
			item.FileIndices = []int{child.fileIndex}
		}
		*out = append(*out, item)

		if child.isDir {
			walk(child, depth+1, outline, out)
		}
	}
}

// collectFileIndices gathers every descendant file's index under a
// directory node, in ascending order.
func collectFileIndices(n *node) []int {
	var indices []int
	var visit func(*node)
	visit = func(cur *node) {
		if !cur.isDir {
			indices = append(indices, cur.fileIndex)
			return
		}
		for _, child := range cur.children {
			visit(child)
		}
	}
	visit(n)
	sort.Ints(indices)
	return indices
}
