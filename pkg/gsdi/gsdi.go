package gsdi

import (
	"context"

	"github.com/gnames/gnphylo/pkg/tree"
)

// Result accumulates the outcome of a reconciliation. Event counters
// live here, not on the events themselves.
type Result struct {
	// Speciations counts internal gene-tree nodes classified as
	// speciation events.
	Speciations int

	// Duplications counts internal gene-tree nodes classified as
	// duplication events.
	Duplications int

	// Ambiguous counts internal gene-tree nodes classified as
	// speciation-or-duplication events under the permissive model.
	Ambiguous int

	// MappingCost is the L diagnostic: the sum over internal gene-tree
	// nodes of the link-depth differences between a node and its
	// children. It is a quality signal, not a correctness guarantee.
	MappingCost int
}

// Reconcile computes, for every internal node of a rooted binary gene
// tree, the species-tree node it maps to under the LCA mapping, and
// classifies the node as a speciation, duplication, or (under the
// permissive model) an ambiguous speciation-or-duplication event.
//
// Preconditions: the species tree is preorder-indexed and every
// external gene-tree node links to a species-tree node. The gene tree
// is mutated in place: every internal node gains an event and a link.
//
// When mostParsimonious is true, events that cannot be uniquely decided
// at a multifurcating species-tree node are labeled as duplications;
// otherwise they are labeled as ambiguous.
func Reconcile(
	ctx context.Context,
	gene *tree.Tree,
	species *tree.Tree,
	mostParsimonious bool,
) (*Result, error) {
	if species == nil || species.Root() == nil {
		return nil, InvalidStateError("species tree is empty")
	}
	if gene == nil || gene.Root() == nil {
		return nil, InvalidStateError("gene tree is empty")
	}
	for _, g := range gene.Externals() {
		if g.Link == nil {
			return nil, InvalidStateError(
				"external gene node '" + g.Label() + "' has no species link",
			)
		}
	}

	res := &Result{}
	for _, g := range gene.Postorder() {
		if err := ctx.Err(); err != nil {
			return nil, CancelledError(err)
		}
		if g.IsExternal() {
			continue
		}
		children := g.Children()
		if len(children) != 2 {
			return nil, InvalidStateError(
				"gene tree is not binary at node '" + g.Label() + "'",
			)
		}
		g1, g2 := children[0], children[1]

		// LCA step: advance the link with the larger preorder id to its
		// parent until both meet. Ancestors have smaller ids, so this
		// converges on the least common ancestor.
		s1, s2 := g1.Link, g2.Link
		for s1 != s2 {
			if s1.ID() > s2.ID() {
				s1 = s1.Parent()
			} else {
				s2 = s2.Parent()
			}
		}
		g.Link = s1

		g.Event = classify(g, g1, g2, mostParsimonious)
		switch g.Event {
		case tree.Speciation:
			res.Speciations++
		case tree.Duplication:
			res.Duplications++
		case tree.SpeciationOrDuplication:
			res.Ambiguous++
		}

		res.MappingCost += (g1.Link.Depth() - g.Link.Depth()) +
			(g2.Link.Depth() - g.Link.Depth())
	}
	return res, nil
}

// classify decides the event type of an internal gene node whose link
// has already been set to the LCA of its children's links.
func classify(g, g1, g2 *tree.Node, mostParsimonious bool) tree.Event {
	s := g.Link
	oyako := g1.Link == s || g2.Link == s

	// At a strictly bifurcating species node the decision is exact.
	if len(s.Children()) == 2 {
		if oyako {
			return tree.Duplication
		}
		return tree.Speciation
	}

	if !oyako {
		return tree.Speciation
	}

	// Multifurcation with a parent-child mapping: the event is a true
	// duplication only if both gene subtrees reach into a shared species
	// subtree directly under s.
	if intersects(subtreeRootsUnder(g1, s), subtreeRootsUnder(g2, s)) {
		return tree.Duplication
	}
	if mostParsimonious {
		return tree.Duplication
	}
	return tree.SpeciationOrDuplication
}

// subtreeRootsUnder collects the direct children of s (or s itself)
// reached by walking each external's link upward until its parent
// becomes s or the walk runs out of ancestors.
func subtreeRootsUnder(g *tree.Node, s *tree.Node) map[*tree.Node]bool {
	res := make(map[*tree.Node]bool)
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.IsExternal() {
			a := n.Link
			for a != s && a.Parent() != nil && a.Parent() != s {
				a = a.Parent()
			}
			res[a] = true
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(g)
	return res
}

func intersects(a, b map[*tree.Node]bool) bool {
	for n := range a {
		if b[n] {
			return true
		}
	}
	return false
}
