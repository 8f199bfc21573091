// Package iotesting provides shared test doubles: a scripted taxonomy
// service and a recording notifier. This is an internal package for
// test infrastructure only.
package iotesting

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/taxsearch"
	"gopkg.in/yaml.v3"
)

// Call records one Search invocation.
type Call struct {
	Facet      taxsearch.Facet
	Query      string
	MaxResults int
}

// ScriptedService is an in-memory TaxonomyService whose responses are
// scripted per facet and query. It records every call and is safe for
// concurrent use.
type ScriptedService struct {
	mu        sync.Mutex
	responses map[string][]*taxonomy.Taxonomy
	calls     []Call

	// Err, when set, is returned by every Search call. It simulates an
	// unreachable or failing service.
	Err error
}

// NewService creates an empty scripted service.
func NewService() *ScriptedService {
	return &ScriptedService{
		responses: make(map[string][]*taxonomy.Taxonomy),
	}
}

// Respond scripts the records returned for a facet and query.
func (s *ScriptedService) Respond(
	facet taxsearch.Facet,
	query string,
	recs ...*taxonomy.Taxonomy,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[scriptKey(facet, query)] = recs
}

// Search implements taxsearch.TaxonomyService.
func (s *ScriptedService) Search(
	_ context.Context,
	facet taxsearch.Facet,
	query string,
	maxResults int,
) ([]*taxonomy.Taxonomy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{
		Facet:      facet,
		Query:      query,
		MaxResults: maxResults,
	})
	if s.Err != nil {
		return nil, s.Err
	}

	recs := s.responses[scriptKey(facet, query)]
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	res := make([]*taxonomy.Taxonomy, len(recs))
	for i, rec := range recs {
		res[i] = rec.Clone()
	}
	return res, nil
}

// Calls returns a copy of all recorded Search invocations.
func (s *ScriptedService) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Call, len(s.calls))
	copy(res, s.calls)
	return res
}

// CallCount returns the number of Search invocations so far.
func (s *ScriptedService) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func scriptKey(facet taxsearch.Facet, query string) string {
	return fmt.Sprintf("%d|%s", facet, query)
}

// fixture mirrors the YAML layout of scripted responses.
type fixture struct {
	Responses []struct {
		Facet      string               `yaml:"facet"`
		Query      string               `yaml:"query"`
		Taxonomies []*taxonomy.Taxonomy `yaml:"taxonomies"`
	} `yaml:"responses"`
}

var fixtureFacets = map[string]taxsearch.Facet{
	"id":          taxsearch.ID,
	"sci_name":    taxsearch.SciName,
	"code":        taxsearch.Code,
	"common_name": taxsearch.CommonName,
}

// LoadService builds a scripted service from a YAML fixture file:
//
//	responses:
//	  - facet: sci_name
//	    query: Drosophila
//	    taxonomies:
//	      - scientific_name: Drosophila
//	        lineage: [Eukaryota, Metazoa, Drosophila]
func LoadService(t *testing.T, path string) *ScriptedService {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", path, err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		t.Fatalf("Failed to parse fixture %s: %v", path, err)
	}

	srv := NewService()
	for _, r := range fx.Responses {
		facet, ok := fixtureFacets[r.Facet]
		if !ok {
			t.Fatalf("Fixture %s has unknown facet %q", path, r.Facet)
		}
		srv.Respond(facet, r.Query, r.Taxonomies...)
	}
	return srv
}
