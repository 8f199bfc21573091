package ioresolve

import (
	"context"
	"strings"

	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
)

// ResolveLineage resolves a full lineage path. The service is asked for
// taxonomies matching the last lineage element; of the returned list, a
// record matches iff its lineage agrees with the query element-wise,
// case-insensitively. Exactly one match is cached and returned.
func (r *resolver) ResolveLineage(
	ctx context.Context,
	lineage []string,
) (*taxonomy.Taxonomy, error) {
	query := make([]string, 0, len(lineage))
	for _, l := range lineage {
		if l != "" {
			query = append(query, l)
		}
	}
	path := strings.Join(query, taxonomy.LineageSeparator)
	if len(query) == 0 {
		return nil, LineageNotFoundError(path)
	}

	if hit := r.cch.Get(taxsearch.LineagePath, path); hit != nil {
		return hit, nil
	}

	last := query[len(query)-1]
	recs, err := r.search(
		ctx, taxsearch.SciName, last, r.cfg.MaxResultsAncestral,
	)
	if err != nil {
		return nil, err
	}

	var matches []*taxonomy.Taxonomy
	for _, rec := range recs {
		if lineageMatches(query, rec.Lineage) {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		return nil, LineageNotFoundError(path)
	case 1:
		r.cch.Put(matches[0])
		return matches[0].Clone(), nil
	default:
		return nil, LineageAmbiguousError(path, len(matches))
	}
}

// lineageMatches reports whether lin agrees with query at every query
// index, compared case-insensitively.
func lineageMatches(query, lin []string) bool {
	if len(lin) < len(query) {
		return false
	}
	for i := range query {
		if !strings.EqualFold(query[i], lin[i]) {
			return false
		}
	}
	return true
}
