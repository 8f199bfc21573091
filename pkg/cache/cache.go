// Package cache implements the process-wide taxonomy cache. The cache
// is an explicitly constructed value threaded through the resolvers;
// there are no package-level globals, which keeps batch runs and tests
// isolated from each other.
package cache

import (
	"sync"

	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
)

// Cache stores taxonomy records under five independent facets: id,
// scientific name, code, common name and lineage path. All operations
// are internally synchronized; each public method is one critical
// section. Methods do not compose atomically - a concurrent Put by
// another job may beat a local Put, which is safe because cached values
// are canonical.
type Cache struct {
	mu     sync.Mutex
	max    int
	facets map[taxsearch.Facet]map[string]*taxonomy.Taxonomy
}

// New creates a cache whose facets hold at most maxEntries records
// each. Non-positive maxEntries falls back to the default capacity.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 100_000
	}
	c := &Cache{
		max:    maxEntries,
		facets: make(map[taxsearch.Facet]map[string]*taxonomy.Taxonomy, 5),
	}
	for _, f := range []taxsearch.Facet{
		taxsearch.ID,
		taxsearch.SciName,
		taxsearch.Code,
		taxsearch.CommonName,
		taxsearch.LineagePath,
	} {
		c.facets[f] = make(map[string]*taxonomy.Taxonomy)
	}
	return c
}

// Get returns a deep copy of the record cached under the given facet
// and key, or nil on a miss. Callers may mutate the copy freely.
func (c *Cache) Get(facet taxsearch.Facet, key string) *taxonomy.Taxonomy {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.facets[facet]
	if !ok {
		return nil
	}
	return m[key].Clone()
}

// Put inserts the record into every facet map whose corresponding field
// is non-empty, so later lookups via any facet succeed. The capacity
// check runs before the insertions. The cache stores its own copy of
// the record.
func (c *Cache) Put(recs ...*taxonomy.Taxonomy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybeEvict()
	for _, t := range recs {
		if t == nil {
			continue
		}
		t = t.Clone()
		if t.ID != "" {
			c.facets[taxsearch.ID][t.ID] = t
		}
		if t.ScientificName != "" {
			c.facets[taxsearch.SciName][t.ScientificName] = t
		}
		if t.Code != "" {
			c.facets[taxsearch.Code][t.Code] = t
		}
		if t.CommonName != "" {
			c.facets[taxsearch.CommonName][t.CommonName] = t
		}
		if path := t.LineagePath(); path != "" {
			c.facets[taxsearch.LineagePath][path] = t
		}
	}
}

// MaybeEvict clears every facet that has reached the capacity. This
// is a simple capacity sentinel, not an LRU: readers may observe a
// facet being emptied between two adjacent operations.
func (c *Cache) MaybeEvict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maybeEvict()
}

func (c *Cache) maybeEvict() {
	for f, m := range c.facets {
		if len(m) >= c.max {
			c.facets[f] = make(map[string]*taxonomy.Taxonomy)
		}
	}
}

// Len returns the number of records cached under the given facet.
func (c *Cache) Len(facet taxsearch.Facet) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.facets[facet])
}
