// Package ioancestral implements ancestral taxonomy inference: internal
// gene-tree nodes receive the taxonomy of the deepest taxon shared by
// all of their direct descendants.
package ioancestral

import (
	"context"
	"strings"

	"github.com/gnames/gnphylo/pkg/config"
	"github.com/gnames/gnphylo/pkg/notify"
	"github.com/gnames/gnphylo/pkg/resolve"
	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/tree"
)

type inferer struct {
	cfg *config.Config
	rsv resolve.Resolver
	ntf notify.Notifier
}

// New creates an AncestralInferer on top of a Resolver. Canonical
// records for descendants are obtained through the resolver, so the
// shared cache is populated opportunistically along the way.
func New(
	cfg *config.Config,
	rsv resolve.Resolver,
	ntf notify.Notifier,
) resolve.AncestralInferer {
	if ntf == nil {
		ntf = notify.Nop{}
	}
	return &inferer{cfg: cfg, rsv: rsv, ntf: ntf}
}

// Infer walks the gene tree in postorder and assigns to every internal
// node a taxonomy built from the longest common lineage prefix of its
// direct descendants. Any per-node failure is fatal: inference produces
// a single coherent reconstruction or nothing.
func (h *inferer) Infer(ctx context.Context, t *tree.Tree) error {
	for _, n := range t.Postorder() {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}
		if n.IsExternal() {
			continue
		}
		if err := h.inferNode(ctx, n); err != nil {
			if !resolve.IsUnresolved(err) {
				h.ntf.Error("Ancestral inference failure", err.Error())
			}
			return err
		}
	}
	return nil
}

func (h *inferer) inferNode(ctx context.Context, n *tree.Node) error {
	// Any prior annotation is recomputed from scratch.
	n.Taxonomy = nil

	children := n.Children()
	lineages := make([][]string, 0, len(children))
	for _, c := range children {
		if !c.Taxonomy.HasResolvableFacet() {
			return MissingTaxonomyError(c.Label())
		}
		canon, err := h.obtain(ctx, c.Taxonomy)
		if err != nil {
			if resolve.IsUnresolved(err) {
				return LineageUnavailableError(c.Label(), err)
			}
			return err
		}
		if len(canon.Lineage) == 0 {
			return LineageUnavailableError(c.Label(), nil)
		}
		lineages = append(lineages, canon.Lineage)
	}

	k := commonPrefix(lineages)
	if k == 0 {
		return NoCommonLineageError(n.Label(), lineages)
	}

	prefix := lineages[0][:k]
	tax := taxonomy.New()
	tax.ScientificName = prefix[k-1]
	tax.SetLineage(prefix)

	// The shared prefix usually names a real taxon; fill in its details
	// when the lineage cache or the service knows it.
	if canon, err := h.rsv.ResolveLineage(ctx, prefix); err == nil {
		if tax.ID == "" {
			tax.ID = canon.ID
			tax.Provider = canon.Provider
		}
		if tax.CommonName == "" {
			tax.CommonName = canon.CommonName
		}
		tax.SetRank(canon.Rank)
		for _, s := range canon.Synonyms {
			tax.AddSynonym(s)
		}
		tax.SetLineage(canon.Lineage)
	} else if !resolve.IsUnresolved(err) {
		return err
	}

	n.Taxonomy = tax

	// Redundancy pruning: an internal descendant that repeats the
	// ancestor's taxonomy adds no information on an unbranched line.
	for _, c := range children {
		if !c.IsExternal() && c.Taxonomy.Equal(tax) {
			c.Taxonomy = nil
		}
	}
	return nil
}

// obtain fetches the canonical record for a descendant's taxonomy. The
// lookup copy has its lineage cleared, so the resolver never picks the
// lineage strategy and queries by id or scientific name instead; inside
// inference the lineage is the quantity being computed, not a lookup key.
func (h *inferer) obtain(
	ctx context.Context,
	t *taxonomy.Taxonomy,
) (*taxonomy.Taxonomy, error) {
	lookup := t.Clone()
	lookup.Lineage = nil
	return h.rsv.Resolve(ctx, lookup)
}

// commonPrefix returns the length of the longest lineage prefix shared
// by all lineages, compared case-insensitively.
func commonPrefix(lineages [][]string) int {
	if len(lineages) == 0 {
		return 0
	}
	shortest := len(lineages[0])
	for _, lin := range lineages[1:] {
		if len(lin) < shortest {
			shortest = len(lin)
		}
	}
	k := 0
	for i := 0; i < shortest; i++ {
		el := lineages[0][i]
		for _, lin := range lineages[1:] {
			if !strings.EqualFold(lin[i], el) {
				return k
			}
		}
		k++
	}
	return k
}
