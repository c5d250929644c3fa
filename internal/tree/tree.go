// Package tree is a tri-state checkbox tree. Selecting a folder selects all
// of its descendants; a folder is selected when every child is and partially
// selected when only some are.
package tree

import (
	"arecibodash/internal/domain"
)

// Spec describes a node to add
type Spec struct {
	Title     string
	Folder    bool
	Selected  bool
	Highlight bool
}

// Node is a tree node
type Node struct {
	title     string
	folder    bool
	selected  bool
	partial   bool
	expanded  bool
	highlight bool
	parent    *Node
	children  []*Node
}

func (n *Node) Title() string { return n.title }
func (n *Node) Folder() bool { return n.folder }
func (n *Node) Selected() bool { return n.selected }
func (n *Node) Partial() bool { return n.partial }
func (n *Node) Expanded() bool { return n.expanded }
func (n *Node) Highlighted() bool { return n.highlight }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Parent() *Node { return n.parent }

// Label implements domain.TreeNode
func (n *Node) Label() string { return n.title }

// ParentLabel implements domain.TreeNode. The root has no label.
func (n *Node) ParentLabel() (string, bool) {
	if n.parent == nil || n.parent.parent == nil {
		return "", false
	}
	return n.parent.title, true
}

// IsLeaf implements domain.TreeNode
func (n *Node) IsLeaf() bool { return !n.folder && len(n.children) == 0 }

// HasSubSelection implements domain.TreeNode
func (n *Node) HasSubSelection() bool { return n.partial }

// Depth is the number of ancestors below the root
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil && p.parent != nil; p = p.parent {
		depth++
	}
	return depth
}

// Tree is a checkbox tree with an invisible root
type Tree struct {
	root *Node
}

// New creates an empty tree
func New() *Tree {
	return &Tree{root: &Node{folder: true, expanded: true}}
}

// Root returns the invisible root node
func (t *Tree) Root() *Node {
	return t.root
}

// AddChild appends a node under parent (the root when parent is nil)
func (t *Tree) AddChild(parent *Node, spec Spec) *Node {
	if parent == nil {
		parent = t.root
	}
	child := &Node{
		title:     spec.Title,
		folder:    spec.Folder,
		highlight: spec.Highlight,
		parent:    parent,
	}
	parent.children = append(parent.children, child)
	if spec.Selected {
		setSubtree(child, true)
	}
	refreshAncestors(parent)
	return child
}

// RemoveChildren empties the tree
func (t *Tree) RemoveChildren() {
	t.root.children = nil
	t.root.selected = false
	t.root.partial = false
}

// Expand opens or closes a folder
func (t *Tree) Expand(n *Node, expand bool) {
	if n == nil || !n.folder {
		return
	}
	n.expanded = expand
}

// Toggle flips the selection of n and its subtree
func (t *Tree) Toggle(n *Node) {
	if n == nil || n == t.root {
		return
	}
	// A partially selected folder becomes fully selected
	setSubtree(n, !n.selected)
	refreshAncestors(n.parent)
}

// SetAll selects or clears every node
func (t *Tree) SetAll(selected bool) {
	for _, c := range t.root.children {
		setSubtree(c, selected)
	}
	refreshAncestors(t.root)
}

// SelectedNodes returns every selected node in document order
func (t *Tree) SelectedNodes() []domain.TreeNode {
	var nodes []domain.TreeNode
	t.Walk(func(n *Node) {
		if n.selected {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Populate adds folders and their leaves. Leaves of a folder with an empty
// title are attached to the root.
func (t *Tree) Populate(folders []domain.TreeFolder) {
	for _, f := range folders {
		parent := t.root
		if f.Title != "" {
			parent = t.AddChild(nil, Spec{Title: f.Title, Folder: true, Highlight: f.Highlight})
		}
		for _, leaf := range f.Leaves {
			t.AddChild(parent, Spec{Title: leaf.Title, Selected: leaf.Selected})
		}
		if f.Expand {
			t.Expand(parent, true)
		}
	}
}

// Walk visits every node below the root depth first
func (t *Tree) Walk(fn func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			fn(c)
			walk(c)
		}
	}
	walk(t.root)
}

// Visible returns the nodes shown when collapsed folders hide their children
func (t *Tree) Visible() []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			nodes = append(nodes, c)
			if c.expanded {
				walk(c)
			}
		}
	}
	walk(t.root)
	return nodes
}

// Len is the number of nodes below the root
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node) { count++ })
	return count
}

func setSubtree(n *Node, selected bool) {
	n.selected = selected
	n.partial = false
	for _, c := range n.children {
		setSubtree(c, selected)
	}
	if len(n.children) > 0 {
		refreshNode(n)
	}
}

func refreshAncestors(n *Node) {
	for ; n != nil; n = n.parent {
		refreshNode(n)
	}
}

func refreshNode(n *Node) {
	if len(n.children) == 0 {
		// An empty folder keeps its own state
		n.partial = false
		return
	}
	all, some := true, false
	for _, c := range n.children {
		if c.selected {
			some = true
		} else {
			all = false
		}
		if c.partial {
			some = true
		}
	}
	n.selected = all
	n.partial = some && !all
}
