package tree

import "sort"

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Node is an immutable entry of a scanned tree. Directory sizes are the sum of
// their children and are computed once at construction.
type Node struct {
	name     string
	size     int64
	kind     Kind
	children []*Node
	files    int
	dirs     int
}

// NewFile returns a leaf node. Negative sizes are clamped to zero.
func NewFile(name string, size int64) *Node {
	if size < 0 {
		size = 0
	}
	return &Node{name: name, size: size, kind: File}
}

// NewDirectory returns a directory node owning children. Nil children are
// dropped and the remainder is ordered by size descending, then by name.
func NewDirectory(name string, children ...*Node) *Node {
	n := &Node{name: name, kind: Directory}
	kept := make([]*Node, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		kept = append(kept, child)
		n.size += child.size
		if child.kind == Directory {
			n.dirs += child.dirs + 1
			n.files += child.files
		} else {
			n.files++
		}
	}
	SortBySize(kept)
	n.children = kept
	return n
}

// SortBySize orders nodes by size descending, breaking ties by name.
func SortBySize(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].size != nodes[j].size {
			return nodes[i].size > nodes[j].size
		}
		return nodes[i].name < nodes[j].name
	})
}

func (n *Node) Name() string { return n.name }
func (n *Node) Size() int64  { return n.size }
func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) IsDir() bool  { return n.kind == Directory }

// Len reports the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Children returns a copy of the ordered children.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Count reports how many files and directories live below n.
func (n *Node) Count() (files, dirs int) {
	return n.files, n.dirs
}

// Find resolves a path of child names below n.
func (n *Node) Find(names ...string) (*Node, bool) {
	cur := n
	for _, name := range names {
		var next *Node
		for _, child := range cur.children {
			if child.name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
