package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drome() *taxonomy.Taxonomy {
	return &taxonomy.Taxonomy{
		ID:             "7227",
		Provider:       "ncbi",
		ScientificName: "Drosophila melanogaster",
		Code:           "DROME",
		CommonName:     "fruit fly",
		Rank:           "species",
		Lineage:        []string{"Eukaryota", "Metazoa", "Drosophila"},
	}
}

func TestPutPopulatesAllFacets(t *testing.T) {
	c := New(100)
	rec := drome()
	c.Put(rec)

	tests := []struct {
		facet taxsearch.Facet
		key   string
	}{
		{taxsearch.ID, "7227"},
		{taxsearch.SciName, "Drosophila melanogaster"},
		{taxsearch.Code, "DROME"},
		{taxsearch.CommonName, "fruit fly"},
		{taxsearch.LineagePath, "Eukaryota>Metazoa>Drosophila"},
	}
	for _, tt := range tests {
		t.Run(tt.facet.String(), func(t *testing.T) {
			got := c.Get(tt.facet, tt.key)
			require.NotNil(t, got)
			assert.True(t, rec.Equal(got))
		})
	}
}

func TestPutSkipsEmptyFacets(t *testing.T) {
	c := New(100)
	c.Put(&taxonomy.Taxonomy{ScientificName: "Drosophila"})

	assert.Equal(t, 1, c.Len(taxsearch.SciName))
	assert.Equal(t, 0, c.Len(taxsearch.ID))
	assert.Equal(t, 0, c.Len(taxsearch.Code))
	assert.Equal(t, 0, c.Len(taxsearch.CommonName))
	assert.Equal(t, 0, c.Len(taxsearch.LineagePath))
}

func TestGetMiss(t *testing.T) {
	c := New(100)
	assert.Nil(t, c.Get(taxsearch.SciName, "Drosophila"))
	assert.Nil(t, c.Get(taxsearch.SciName, ""))
}

func TestCopyIndependence(t *testing.T) {
	c := New(100)
	rec := drome()
	c.Put(rec)

	// Mutating the record after Put does not affect the cache.
	rec.Lineage[0] = "changed"
	got := c.Get(taxsearch.ID, "7227")
	require.NotNil(t, got)
	assert.Equal(t, "Eukaryota", got.Lineage[0])

	// Mutating the result of Get never changes the next Get.
	got.ScientificName = "changed"
	got.Lineage[0] = "changed"
	again := c.Get(taxsearch.ID, "7227")
	require.NotNil(t, again)
	assert.Equal(t, "Drosophila melanogaster", again.ScientificName)
	assert.Equal(t, "Eukaryota", again.Lineage[0])
}

func TestCapacitySentinel(t *testing.T) {
	c := New(5)
	for i := 0; i < 5; i++ {
		rec := &taxonomy.Taxonomy{
			ScientificName: fmt.Sprintf("Taxon%d", i),
		}
		// Only two of the records carry a code.
		if i < 2 {
			rec.Code = fmt.Sprintf("TAX%d", i)
		}
		c.Put(rec)
	}
	require.Equal(t, 5, c.Len(taxsearch.SciName))
	require.Equal(t, 2, c.Len(taxsearch.Code))

	c.MaybeEvict()

	// The full facet is wholesale-cleared; the facet below capacity
	// keeps its entries.
	assert.Equal(t, 0, c.Len(taxsearch.SciName))
	assert.Equal(t, 2, c.Len(taxsearch.Code))
}

func TestPutRunsCapacityCheck(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Put(&taxonomy.Taxonomy{ScientificName: fmt.Sprintf("Taxon%d", i)})
	}
	require.Equal(t, 3, c.Len(taxsearch.SciName))

	// The next batch clears the facet before inserting.
	c.Put(&taxonomy.Taxonomy{ScientificName: "Taxon3"})
	assert.Equal(t, 1, c.Len(taxsearch.SciName))
	assert.NotNil(t, c.Get(taxsearch.SciName, "Taxon3"))
	assert.Nil(t, c.Get(taxsearch.SciName, "Taxon0"))
}

func TestConcurrentAccess(t *testing.T) {
	c := New(1000)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put(&taxonomy.Taxonomy{
					ScientificName: fmt.Sprintf("Taxon-%d-%d", worker, j),
				})
				c.Get(taxsearch.SciName, fmt.Sprintf("Taxon-%d-%d", worker, j))
				c.MaybeEvict()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, c.Len(taxsearch.SciName))
}
