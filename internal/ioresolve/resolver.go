// Package ioresolve implements the taxonomy resolver. It orders lookup
// strategies by the identifiers available on a record, consults the
// shared taxonomy cache first, and falls back to the external taxonomy
// service on a miss. Identical concurrent service calls are collapsed
// with singleflight.
package ioresolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnphylo/pkg/cache"
	"github.com/gnames/gnphylo/pkg/config"
	"github.com/gnames/gnphylo/pkg/notify"
	"github.com/gnames/gnphylo/pkg/parserpool"
	"github.com/gnames/gnphylo/pkg/resolve"
	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
	"golang.org/x/sync/singleflight"
)

type resolver struct {
	cfg  *config.Config
	cch  *cache.Cache
	srv  taxsearch.TaxonomyService
	ntf  notify.Notifier
	pool parserpool.Pool
	sf   singleflight.Group
}

// New creates a Resolver backed by the given cache and taxonomy
// service. The cache is shared between jobs; the resolver never creates
// its own.
func New(
	cfg *config.Config,
	cch *cache.Cache,
	srv taxsearch.TaxonomyService,
	ntf notify.Notifier,
) resolve.Resolver {
	if ntf == nil {
		ntf = notify.Nop{}
	}
	return &resolver{
		cfg:  cfg,
		cch:  cch,
		srv:  srv,
		ntf:  ntf,
		pool: parserpool.NewPool(cfg.JobsNumber),
	}
}

// Resolve picks a lookup strategy by the identifiers present on t, in
// fixed priority: appropriate id, scientific name with lineage,
// scientific name, code, common name.
func (r *resolver) Resolve(
	ctx context.Context,
	t *taxonomy.Taxonomy,
) (*taxonomy.Taxonomy, error) {
	switch {
	case t.IsEmpty():
		return nil, NotFoundError(taxsearch.SciName, "")
	case t.HasAppropriateID():
		return r.byFacet(ctx, taxsearch.ID, t.ID)
	case t.ScientificName != "" && len(t.Lineage) > 0:
		return r.ResolveLineage(ctx, queryLineage(t))
	case t.ScientificName != "":
		return r.bySciName(ctx, t.ScientificName)
	case t.Code != "":
		return r.byFacet(ctx, taxsearch.Code, t.Code)
	default:
		return r.byFacet(ctx, taxsearch.CommonName, t.CommonName)
	}
}

// ResolveName resolves a bare node name, trying the scientific name,
// code and common name facets in that order. Ambiguous hits on one
// facet do not stop the fallthrough to the next.
func (r *resolver) ResolveName(
	ctx context.Context,
	name string,
) (*taxonomy.Taxonomy, error) {
	facets := []taxsearch.Facet{
		taxsearch.SciName,
		taxsearch.Code,
		taxsearch.CommonName,
	}
	for _, f := range facets {
		var res *taxonomy.Taxonomy
		var err error
		if f == taxsearch.SciName {
			res, err = r.bySciName(ctx, name)
		} else {
			res, err = r.byFacet(ctx, f, name)
		}
		if err == nil {
			return res, nil
		}
		if !resolve.IsUnresolved(err) {
			return nil, err
		}
	}
	return nil, NotFoundError(taxsearch.SciName, name)
}

// byFacet looks a key up in the cache and, on a miss, queries the
// taxonomy service. The service result is accepted only if exactly one
// record is returned; several records mean the query was ambiguous.
func (r *resolver) byFacet(
	ctx context.Context,
	facet taxsearch.Facet,
	key string,
) (*taxonomy.Taxonomy, error) {
	if key == "" {
		return nil, NotFoundError(facet, key)
	}
	if hit := r.cch.Get(facet, key); hit != nil {
		return hit, nil
	}

	recs, err := r.search(ctx, facet, key, r.cfg.MaxResultsDetail)
	if err != nil {
		return nil, err
	}
	switch len(recs) {
	case 0:
		return nil, NotFoundError(facet, key)
	case 1:
		r.cch.Put(recs[0])
		return recs[0].Clone(), nil
	default:
		return nil, AmbiguousError(facet, key, len(recs))
	}
}

// bySciName resolves a scientific name. When the exact name misses the
// cache, its simple canonical form is tried as an additional key before
// and after the service call. Exact keys always win, so the canonical
// fallback can only add hits.
func (r *resolver) bySciName(
	ctx context.Context,
	name string,
) (*taxonomy.Taxonomy, error) {
	if name == "" {
		return nil, NotFoundError(taxsearch.SciName, name)
	}
	if hit := r.cch.Get(taxsearch.SciName, name); hit != nil {
		return hit, nil
	}

	canonical := r.pool.Canonical(name)
	if canonical != "" && canonical != name {
		if hit := r.cch.Get(taxsearch.SciName, canonical); hit != nil {
			return hit, nil
		}
	}

	res, err := r.byFacet(ctx, taxsearch.SciName, name)
	if err == nil || !resolve.IsUnresolved(err) {
		return res, err
	}
	if canonical != "" && canonical != name {
		return r.byFacet(ctx, taxsearch.SciName, canonical)
	}
	return nil, err
}

// search calls the taxonomy service, collapsing identical concurrent
// calls from parallel jobs into one network request. Cancellation is
// checked before every call.
func (r *resolver) search(
	ctx context.Context,
	facet taxsearch.Facet,
	query string,
	maxResults int,
) ([]*taxonomy.Taxonomy, error) {
	if err := ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	key := fmt.Sprintf("%d|%s|%d", facet, query, maxResults)
	v, err, _ := r.sf.Do(key, func() (any, error) {
		return r.srv.Search(ctx, facet, query, maxResults)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, CancelledError(err)
		}
		return nil, ServiceError(facet, query, err)
	}
	return v.([]*taxonomy.Taxonomy), nil
}

// queryLineage returns the full lineage path used for disambiguation.
// The taxon's own scientific name is the last element of the path;
// records coming from parsers sometimes omit it from the lineage, so it
// is appended when missing.
func queryLineage(t *taxonomy.Taxonomy) []string {
	lin := t.Lineage
	if len(lin) == 0 ||
		!strings.EqualFold(lin[len(lin)-1], t.ScientificName) {
		res := make([]string, 0, len(lin)+1)
		res = append(res, lin...)
		res = append(res, t.ScientificName)
		return res
	}
	return lin
}
