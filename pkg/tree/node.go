package tree

import (
	"strconv"

	"github.com/gnames/gnphylo/pkg/taxonomy"
)

// Node is a single node of a rooted phylogeny. Nodes are owned by their
// Tree; the Link field is a weak back-reference into another tree and
// must never be treated as ownership.
type Node struct {
	id       int
	name     string
	parent   *Node
	children []*Node

	// Taxonomy is the taxonomic annotation of the node, nil when absent.
	Taxonomy *taxonomy.Taxonomy

	// Event classifies an internal gene-tree node after reconciliation.
	Event Event

	// Link points to the species-tree node this gene-tree node maps to.
	// It is set by the species mapper and by GSDI only.
	Link *Node

	// Visual carries rendering attributes. The core stores them but
	// never interprets them.
	Visual map[string]string

	numExternals int
	depth        int
}

// NewNode creates a detached node with the given name.
func NewNode(name string) *Node {
	return &Node{id: -1, name: name}
}

// ID returns the preorder id of the node. Ancestors always have smaller
// ids than their descendants. Valid after Tree.Reindex.
func (n *Node) ID() int {
	return n.id
}

// Name returns the free-text name of the node.
func (n *Node) Name() string {
	return n.name
}

// SetName replaces the free-text name of the node.
func (n *Node) SetName(name string) {
	n.name = name
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the ordered descendants of the node. The returned
// slice is owned by the node and must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// IsExternal reports whether the node is a leaf.
func (n *Node) IsExternal() bool {
	return len(n.children) == 0
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// NumExternals returns the number of external nodes in the subtree
// rooted at n. Valid after Tree.Reindex.
func (n *Node) NumExternals() int {
	return n.numExternals
}

// Depth returns the number of edges between n and the root. Valid after
// Tree.Reindex.
func (n *Node) Depth() int {
	return n.depth
}

// AddChild appends c as the last child of n and sets its parent.
func (n *Node) AddChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

// Label returns a stable human-readable identification of the node:
// the taxonomy string form, falling back to the node name, falling back
// to the preorder id.
func (n *Node) Label() string {
	if s := n.Taxonomy.Label(); s != "" {
		return s
	}
	if n.name != "" {
		return n.name
	}
	return strconv.Itoa(n.id)
}

// detach removes n from its parent's child list.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}
