// Package tree implements the rooted phylogeny shared by the taxonomy
// resolvers and the GSDI reconciliation core.
//
// This is a pure package - no I/O, no network calls. Trees arrive from
// external parsers already materialized; the core only assumes the
// in-memory structure defined here.
package tree

// Tree is a rooted phylogeny with ordered descendants. All structural
// mutations must go through Tree methods followed by Reindex, so that
// preorder ids, depths and external-descendant counts stay consistent.
type Tree struct {
	root  *Node
	nodes []*Node
}

// New wraps a root node into a Tree and indexes it.
func New(root *Node) *Tree {
	t := &Tree{root: root}
	t.Reindex()
	return t
}

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Reindex walks the tree in preorder and reassigns node ids, depths and
// external-descendant counts. It must be called after any structural
// change. Ids satisfy the ancestor ordering: for any ancestor a of b,
// a.ID() < b.ID().
func (t *Tree) Reindex() {
	t.nodes = t.nodes[:0]
	if t.root == nil {
		return
	}
	t.root.parent = nil
	var walk func(n *Node, depth int) int
	walk = func(n *Node, depth int) int {
		n.id = len(t.nodes)
		n.depth = depth
		t.nodes = append(t.nodes, n)
		if n.IsExternal() {
			n.numExternals = 1
			return 1
		}
		var ext int
		for _, c := range n.children {
			c.parent = n
			ext += walk(c, depth+1)
		}
		n.numExternals = ext
		return ext
	}
	walk(t.root, 0)
}

// Preorder returns all nodes in preorder (ancestors first). The
// returned slice is owned by the tree and must not be modified.
func (t *Tree) Preorder() []*Node {
	return t.nodes
}

// Postorder returns all nodes in postorder: children before parents,
// siblings in their stored order. The result is deterministic for a
// fixed tree.
func (t *Tree) Postorder() []*Node {
	res := make([]*Node, 0, len(t.nodes))
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			walk(c)
		}
		res = append(res, n)
	}
	if t.root != nil {
		walk(t.root)
	}
	return res
}

// Externals returns the external nodes in forward (left-to-right)
// order.
func (t *Tree) Externals() []*Node {
	res := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		if n.IsExternal() {
			res = append(res, n)
		}
	}
	return res
}

// RemoveExternals deletes the given external nodes in one deferred
// pass. Internal nodes left with a single child are spliced out, so a
// tree that was strictly binary stays strictly binary. The tree is
// re-indexed before returning. Non-external nodes in the argument are
// ignored.
func (t *Tree) RemoveExternals(nodes []*Node) {
	for _, n := range nodes {
		if n == nil || !n.IsExternal() {
			continue
		}
		t.removeExternal(n)
	}
	t.Reindex()
}

func (t *Tree) removeExternal(n *Node) {
	p := n.parent
	if p == nil {
		// Deleting the last node empties the tree.
		if n == t.root {
			t.root = nil
		}
		return
	}
	n.detach()

	// Collapse the now-unary parent.
	if len(p.children) == 1 {
		only := p.children[0]
		gp := p.parent
		if gp == nil {
			only.parent = nil
			t.root = only
			return
		}
		for i, c := range gp.children {
			if c == p {
				gp.children[i] = only
				only.parent = gp
				break
			}
		}
	}
}
