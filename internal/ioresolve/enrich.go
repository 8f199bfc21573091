package ioresolve

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnphylo/pkg/resolve"
	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
	"github.com/gnames/gnphylo/pkg/tree"
	"golang.org/x/sync/errgroup"
)

// unresolvedPreview caps how many labels the completion notification
// lists before truncating with an ellipsis.
const unresolvedPreview = 20

// EnrichTree resolves the taxonomy of every annotated node of the tree
// and fills in missing fields from the canonical records. Per-node
// failures accumulate in the result; only service failures and
// cancellation return an error.
func (r *resolver) EnrichTree(
	ctx context.Context,
	t *tree.Tree,
	opts resolve.EnrichOpts,
) (*resolve.EnrichResult, error) {
	res := &resolve.EnrichResult{}
	var unresolved []string
	var toDelete []*tree.Node

	for _, n := range t.Postorder() {
		if err := ctx.Err(); err != nil {
			return nil, CancelledError(err)
		}

		hasTax := !n.Taxonomy.IsEmpty()
		bareName := !hasTax && n.Name() != "" && opts.AllowBareNames
		if !hasTax && !bareName {
			continue
		}

		var canon *taxonomy.Taxonomy
		var queried taxsearch.Facet
		var err error
		if hasTax {
			queried = queryFacet(n.Taxonomy)
			canon, err = r.Resolve(ctx, n.Taxonomy)
		} else {
			canon, err = r.ResolveName(ctx, n.Name())
		}

		if err != nil {
			if !resolve.IsUnresolved(err) {
				r.ntf.Error(
					"Taxonomy service failure",
					fmt.Sprintf("node '%s': %s", n.Label(), err.Error()),
				)
				return nil, err
			}
			unresolved = append(unresolved, n.Label())
			if opts.DeleteUnresolved && n.IsExternal() {
				toDelete = append(toDelete, n)
			}
			continue
		}

		if bareName {
			n.Taxonomy = taxonomy.New()
			n.SetName("")
			queried = 0
		}
		mergeTaxonomy(n, canon, queried)
		res.Resolved++
		if res.Resolved%1_000 == 0 {
			slog.Debug("Resolved taxonomies",
				"records", humanize.Comma(int64(res.Resolved)),
			)
		}
	}

	if len(toDelete) > 0 {
		t.RemoveExternals(toDelete)
		res.Deleted = toDelete
	}

	slices.Sort(unresolved)
	res.Unresolved = slices.Compact(unresolved)

	r.notifyEnrichDone(res)
	return res, nil
}

// Warm pre-fetches the taxonomies of all external nodes into the cache
// with concurrent workers. Enrichment itself stays single-threaded and
// deterministic; warming only changes whether it hits the cache or the
// service.
func (r *resolver) Warm(ctx context.Context, t *tree.Tree) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.JobsNumber)

	for _, n := range t.Externals() {
		if n.Taxonomy.IsEmpty() {
			continue
		}
		g.Go(func() error {
			_, err := r.Resolve(ctx, n.Taxonomy)
			if err != nil && !resolve.IsUnresolved(err) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// mergeTaxonomy updates the node's taxonomy in place from the canonical
// record. The facet that was queried is left alone; the other facets
// are filled only when empty; codes are filled on external nodes only;
// synonyms are merged; the lineage is always replaced.
func mergeTaxonomy(n *tree.Node, canon *taxonomy.Taxonomy, queried taxsearch.Facet) {
	t := n.Taxonomy

	if queried != taxsearch.SciName && t.ScientificName == "" {
		t.ScientificName = canon.ScientificName
	}
	if n.IsExternal() && queried != taxsearch.Code && t.Code == "" {
		t.Code = canon.Code
	}
	if queried != taxsearch.CommonName && t.CommonName == "" {
		t.CommonName = canon.CommonName
	}
	if queried != taxsearch.ID && t.ID == "" {
		t.ID = canon.ID
		t.Provider = canon.Provider
	}
	if t.Rank == "" {
		t.SetRank(canon.Rank)
	}
	for _, s := range canon.Synonyms {
		t.AddSynonym(s)
	}
	t.SetLineage(canon.Lineage)
}

// queryFacet mirrors the strategy selection of Resolve: it names the
// facet a Resolve call on t queries, so that the merge can leave it
// alone.
func queryFacet(t *taxonomy.Taxonomy) taxsearch.Facet {
	switch {
	case t.HasAppropriateID():
		return taxsearch.ID
	case t.ScientificName != "" && len(t.Lineage) > 0:
		return taxsearch.LineagePath
	case t.ScientificName != "":
		return taxsearch.SciName
	case t.Code != "":
		return taxsearch.Code
	default:
		return taxsearch.CommonName
	}
}

func (r *resolver) notifyEnrichDone(res *resolve.EnrichResult) {
	if len(res.Unresolved) == 0 {
		r.ntf.Info(
			"Taxonomy resolution",
			fmt.Sprintf(
				"Resolved %s nodes", humanize.Comma(int64(res.Resolved)),
			),
		)
		return
	}

	preview := res.Unresolved
	suffix := ""
	if len(preview) > unresolvedPreview {
		preview = preview[:unresolvedPreview]
		suffix = ", ..."
	}
	r.ntf.Warn(
		"Unresolved taxonomies",
		fmt.Sprintf("%d unresolved: %s%s",
			len(res.Unresolved), strings.Join(preview, ", "), suffix,
		),
	)
}
