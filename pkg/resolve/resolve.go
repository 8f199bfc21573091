// Package resolve defines the interfaces of the taxonomy resolution
// subsystem: the resolver that fills in taxonomy records from an
// external service, and the ancestral inferer that assigns taxonomies
// to internal gene-tree nodes.
package resolve

import (
	"context"

	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/tree"
)

// EnrichOpts controls tree enrichment.
type EnrichOpts struct {
	// DeleteUnresolved removes unresolved external nodes from the tree
	// in one deferred pass after the traversal.
	DeleteUnresolved bool

	// AllowBareNames resolves nodes that carry only a free-text name
	// and no taxonomy, trying scientific name, code and common name in
	// that order.
	AllowBareNames bool
}

// EnrichResult reports the outcome of tree enrichment. Per-node
// resolution failures are non-fatal and accumulate here; only network
// and service failures and cancellation abort the job.
type EnrichResult struct {
	// Unresolved holds the sorted, de-duplicated labels of nodes whose
	// taxonomy could not be resolved.
	Unresolved []string

	// Resolved is the number of nodes whose taxonomy was updated from a
	// canonical record.
	Resolved int

	// Deleted holds the external nodes removed from the tree when
	// DeleteUnresolved was set.
	Deleted []*tree.Node
}

// Resolver orders lookup strategies by available identifier, fetches
// canonical taxonomy records through a TaxonomyService, and fills in
// missing taxonomy fields on tree nodes.
type Resolver interface {
	// Resolve returns the canonical record for the given taxonomy, or
	// an error carrying ResolverNotFoundError / ResolverAmbiguousError
	// codes when zero or several candidates match.
	Resolve(ctx context.Context, t *taxonomy.Taxonomy) (*taxonomy.Taxonomy, error)

	// ResolveName resolves a bare node name, trying scientific name,
	// then code, then common name.
	ResolveName(ctx context.Context, name string) (*taxonomy.Taxonomy, error)

	// ResolveLineage resolves a full lineage path, disambiguating
	// same-named taxa by comparing lineage prefixes.
	ResolveLineage(ctx context.Context, lineage []string) (*taxonomy.Taxonomy, error)

	// EnrichTree resolves and updates the taxonomy of every annotated
	// node of the tree. It never fails on per-node problems; the error
	// is non-nil only for network/service failures or cancellation.
	EnrichTree(ctx context.Context, t *tree.Tree, opts EnrichOpts) (*EnrichResult, error)

	// Warm pre-fetches the taxonomies of all external nodes into the
	// cache with concurrent workers. Unresolvable nodes are skipped;
	// the error is non-nil only for network/service failures or
	// cancellation.
	Warm(ctx context.Context, t *tree.Tree) error
}

// AncestralInferer assigns taxonomies to internal gene-tree nodes from
// the common lineage prefix of their direct descendants.
type AncestralInferer interface {
	// Infer walks the tree in postorder and annotates every internal
	// node. Any per-node failure is fatal for the whole job.
	Infer(ctx context.Context, t *tree.Tree) error
}
