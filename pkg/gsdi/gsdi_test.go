package gsdi

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnphylo/pkg/errcode"
	"github.com/gnames/gnphylo/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaf builds a detached external node; inner builds an internal node
// over the given children.
func leaf(name string) *tree.Node {
	return tree.NewNode(name)
}

func inner(name string, children ...*tree.Node) *tree.Node {
	n := tree.NewNode(name)
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func link(gene, species *tree.Node) {
	gene.Link = species
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var ge *gn.Error
	require.True(t, errors.As(err, &ge), "expected gn.Error, got %v", err)
	return ge.Code
}

func TestSimpleSpeciation(t *testing.T) {
	// Species tree (A,B)S; gene tree (a1,b1)G with a1->A, b1->B.
	a, b := leaf("A"), leaf("B")
	sp := tree.New(inner("S", a, b))

	a1, b1 := leaf("a1"), leaf("b1")
	g := inner("G", a1, b1)
	gene := tree.New(g)
	link(a1, a)
	link(b1, b)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	assert.Equal(t, sp.Root(), g.Link)
	assert.Equal(t, tree.Speciation, g.Event)
	assert.Equal(t, 1, res.Speciations)
	assert.Equal(t, 0, res.Duplications)
	assert.Equal(t, 0, res.Ambiguous)
}

func TestSimpleDuplication(t *testing.T) {
	// Species tree (A,B)S; gene tree (a1,a2)G with both links to A.
	a, b := leaf("A"), leaf("B")
	sp := tree.New(inner("S", a, b))

	a1, a2 := leaf("a1"), leaf("a2")
	g := inner("G", a1, a2)
	gene := tree.New(g)
	link(a1, a)
	link(a2, a)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	assert.Equal(t, a, g.Link)
	assert.Equal(t, tree.Duplication, g.Event)
	assert.Equal(t, 1, res.Duplications)
}

func TestLCAOverMultiLevel(t *testing.T) {
	// Species tree ((A,B)S1,(C,D)S2)R; gene tree ((a,b)X,(c,d)Y)Z.
	a, b, c, d := leaf("A"), leaf("B"), leaf("C"), leaf("D")
	s1 := inner("S1", a, b)
	s2 := inner("S2", c, d)
	r := inner("R", s1, s2)
	sp := tree.New(r)

	ga, gb, gc, gd := leaf("a"), leaf("b"), leaf("c"), leaf("d")
	x := inner("X", ga, gb)
	y := inner("Y", gc, gd)
	z := inner("Z", x, y)
	gene := tree.New(z)
	link(ga, a)
	link(gb, b)
	link(gc, c)
	link(gd, d)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	assert.Equal(t, s1, x.Link)
	assert.Equal(t, s2, y.Link)
	assert.Equal(t, r, z.Link)
	assert.Equal(t, tree.Speciation, x.Event)
	assert.Equal(t, tree.Speciation, y.Event)
	assert.Equal(t, tree.Speciation, z.Event)
	assert.Equal(t, 3, res.Speciations)
	assert.Equal(t, 0, res.Duplications)
	assert.Equal(t, 0, res.Ambiguous)
}

func TestLCAIsDeepestCommonAncestor(t *testing.T) {
	// For every internal gene node, no strict descendant of its link is
	// also a common ancestor of the children's links.
	a, b, c, d := leaf("A"), leaf("B"), leaf("C"), leaf("D")
	s1 := inner("S1", a, b)
	s2 := inner("S2", c, d)
	sp := tree.New(inner("R", s1, s2))

	ga, gb := leaf("a"), leaf("b")
	x := inner("X", ga, gb)
	gene := tree.New(inner("Z", x, leaf("c")))
	link(ga, a)
	link(gb, b)
	link(gene.Root().Children()[1], c)

	_, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	// LCA(A,B) is S1, not R.
	assert.Equal(t, s1, x.Link)
}

func TestMultifurcationSpeciation(t *testing.T) {
	// Species tree (A,B,C)S; gene tree (a,b)G, a->A, b->B. Neither
	// child maps to S itself, so the event is a clean speciation.
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	s := inner("S", a, b, c)
	sp := tree.New(s)

	ga, gb := leaf("a"), leaf("b")
	g := inner("G", ga, gb)
	gene := tree.New(g)
	link(ga, a)
	link(gb, b)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	assert.Equal(t, s, g.Link)
	assert.Equal(t, tree.Speciation, g.Event)
	assert.Equal(t, 1, res.Speciations)
}

func TestMultifurcationAmbiguous(t *testing.T) {
	// Species tree (A,B,C)S; gene tree (a,(b,c)X)G. X maps to S, so G
	// is parent-child with its link; the gene subtrees reach disjoint
	// species subtrees under S.
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	s := inner("S", a, b, c)
	sp := tree.New(s)

	ga, gb, gc := leaf("a"), leaf("b"), leaf("c")
	x := inner("X", gb, gc)
	g := inner("G", ga, x)
	gene := tree.New(g)
	link(ga, a)
	link(gb, b)
	link(gc, c)

	// Permissive model: ambiguous.
	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)
	assert.Equal(t, s, g.Link)
	assert.Equal(t, tree.Speciation, x.Event)
	assert.Equal(t, tree.SpeciationOrDuplication, g.Event)
	assert.Equal(t, 1, res.Speciations)
	assert.Equal(t, 0, res.Duplications)
	assert.Equal(t, 1, res.Ambiguous)

	// Most parsimonious model: duplication.
	res, err = Reconcile(context.Background(), gene, sp, true)
	require.NoError(t, err)
	assert.Equal(t, tree.Duplication, g.Event)
	assert.Equal(t, 1, res.Speciations)
	assert.Equal(t, 1, res.Duplications)
	assert.Equal(t, 0, res.Ambiguous)
}

func TestMultifurcationTrueDuplication(t *testing.T) {
	// Species tree (A,B,C)S; gene tree (a1,(a2,b)X)G. Both gene
	// subtrees reach the species subtree rooted at A, so the event is a
	// true duplication under either model.
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	s := inner("S", a, b, c)
	sp := tree.New(s)

	ga1, ga2, gb := leaf("a1"), leaf("a2"), leaf("b")
	x := inner("X", ga2, gb)
	g := inner("G", ga1, x)
	gene := tree.New(g)
	link(ga1, a)
	link(ga2, a)
	link(gb, b)

	for _, parsimonious := range []bool{false, true} {
		res, err := Reconcile(context.Background(), gene, sp, parsimonious)
		require.NoError(t, err)
		assert.Equal(t, tree.Duplication, g.Event)
		assert.Equal(t, 1, res.Duplications)
		assert.Equal(t, 0, res.Ambiguous)
	}
}

func TestEventTotals(t *testing.T) {
	a, b, c, d := leaf("A"), leaf("B"), leaf("C"), leaf("D")
	s1 := inner("S1", a, b)
	s2 := inner("S2", c, d)
	sp := tree.New(inner("R", s1, s2))

	ga, gb, gc, gd := leaf("a"), leaf("b"), leaf("c"), leaf("d")
	x := inner("X", ga, gc)
	y := inner("Y", gb, gd)
	z := inner("Z", x, y)
	gene := tree.New(z)
	link(ga, a)
	link(gb, b)
	link(gc, c)
	link(gd, d)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	var internals int
	for _, n := range gene.Postorder() {
		if !n.IsExternal() {
			internals++
			assert.NotEqual(t, tree.NoEvent, n.Event)
			assert.NotNil(t, n.Link)
		}
	}
	assert.Equal(
		t, internals,
		res.Speciations+res.Duplications+res.Ambiguous,
	)
}

func TestDeterminism(t *testing.T) {
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	s := inner("S", a, b, c)
	sp := tree.New(s)

	ga, gb, gc := leaf("a"), leaf("b"), leaf("c")
	x := inner("X", gb, gc)
	g := inner("G", ga, x)
	gene := tree.New(g)
	link(ga, a)
	link(gb, b)
	link(gc, c)

	first, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)
	firstEvents := []tree.Event{x.Event, g.Event}

	second, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstEvents, []tree.Event{x.Event, g.Event})
}

func TestMappingCost(t *testing.T) {
	// Gene tree (a1,c1)G over species ((A,B)S1,C)R: the LCA is the root,
	// two levels above A and one level above C.
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	s1 := inner("S1", a, b)
	r := inner("R", s1, c)
	sp := tree.New(r)

	a1, c1 := leaf("a1"), leaf("c1")
	g := inner("G", a1, c1)
	gene := tree.New(g)
	link(a1, a)
	link(c1, c)

	res, err := Reconcile(context.Background(), gene, sp, false)
	require.NoError(t, err)

	// G links to R (depth 0); a1 links to A (depth 2), c1 to C (depth 1).
	assert.Equal(t, r, g.Link)
	assert.Equal(t, 3, res.MappingCost)
}

func TestReconcilePreconditions(t *testing.T) {
	a, b := leaf("A"), leaf("B")
	sp := tree.New(inner("S", a, b))

	a1, b1 := leaf("a1"), leaf("b1")
	gene := tree.New(inner("G", a1, b1))
	link(a1, a)
	// b1 has no link.

	_, err := Reconcile(context.Background(), gene, sp, false)
	require.Error(t, err)
	assert.Equal(t, errcode.GSDIInvalidStateError, errCode(t, err))

	_, err = Reconcile(context.Background(), gene, nil, false)
	require.Error(t, err)
	assert.Equal(t, errcode.GSDIInvalidStateError, errCode(t, err))
}

func TestReconcileNonBinaryGeneTree(t *testing.T) {
	a, b, c := leaf("A"), leaf("B"), leaf("C")
	sp := tree.New(inner("S", a, b, c))

	a1, b1, c1 := leaf("a1"), leaf("b1"), leaf("c1")
	gene := tree.New(inner("G", a1, b1, c1))
	link(a1, a)
	link(b1, b)
	link(c1, c)

	_, err := Reconcile(context.Background(), gene, sp, false)
	require.Error(t, err)
	assert.Equal(t, errcode.GSDIInvalidStateError, errCode(t, err))
}

func TestReconcileCancelled(t *testing.T) {
	a, b := leaf("A"), leaf("B")
	sp := tree.New(inner("S", a, b))

	a1, b1 := leaf("a1"), leaf("b1")
	gene := tree.New(inner("G", a1, b1))
	link(a1, a)
	link(b1, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reconcile(ctx, gene, sp, false)
	require.Error(t, err)
	assert.Equal(t, errcode.CancelledError, errCode(t, err))
}
