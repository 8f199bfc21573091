// Package taxsearch defines the capability interface for external
// taxonomy databases. Transport, authentication, rate limiting and
// per-call timeouts are the adapter's responsibility.
package taxsearch

import (
	"context"

	"github.com/gnames/gnphylo/pkg/taxonomy"
)

// Facet selects which field of a taxonomy record a lookup is keyed by.
type Facet int

const (
	// ID queries by identifier value.
	ID Facet = iota + 1
	// SciName queries by scientific name.
	SciName
	// Code queries by taxonomy code.
	Code
	// CommonName queries by vernacular name.
	CommonName
	// LineagePath keys the lineage facet of the taxonomy cache. It is
	// never sent to a service; lineage lookups query the service by the
	// scientific name of the last lineage element.
	LineagePath
)

var facetNames = map[Facet]string{
	ID:          "id",
	SciName:     "sci_name",
	Code:        "code",
	CommonName:  "common_name",
	LineagePath: "lineage_path",
}

// String implements fmt.Stringer.
func (f Facet) String() string {
	if s, ok := facetNames[f]; ok {
		return s
	}
	return "unknown"
}

// TaxonomyService searches an external taxonomy database. An empty
// result means no hit. Returned records always have their scientific
// name populated when the upstream database provides it; partial
// records are never returned.
//
// Implementations must be safe for concurrent use: several background
// jobs may query the service at the same time.
type TaxonomyService interface {
	// Search returns up to maxResults records matching query under the
	// given facet. Errors indicate transport or service failures, never
	// an empty result.
	Search(
		ctx context.Context,
		facet Facet,
		query string,
		maxResults int,
	) ([]*taxonomy.Taxonomy, error)
}
