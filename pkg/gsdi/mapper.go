// Package gsdi implements generalized speciation/duplication inference:
// binding gene-tree externals to species-tree nodes over a chosen
// taxonomic comparison basis, followed by postorder LCA reconciliation
// and event classification.
//
// This is a pure package - no I/O, no network calls. Taxonomies must be
// resolved before mapping.
package gsdi

import (
	"github.com/gnames/gnphylo/pkg/taxonomy"
	"github.com/gnames/gnphylo/pkg/tree"
)

// Basis is the taxonomy facet chosen to key the gene-to-species
// mapping.
type Basis int

const (
	// BasisSciName keys the mapping by scientific name.
	BasisSciName Basis = iota + 1
	// BasisID keys the mapping by identifier value.
	BasisID
	// BasisCode keys the mapping by taxonomy code.
	BasisCode
)

var basisNames = map[Basis]string{
	BasisSciName: "sci_name",
	BasisID:      "id",
	BasisCode:    "code",
}

// String implements fmt.Stringer.
func (b Basis) String() string {
	if s, ok := basisNames[b]; ok {
		return s
	}
	return "unknown"
}

// project returns the basis's projection of a taxonomy record.
func (b Basis) project(t *taxonomy.Taxonomy) string {
	if t == nil {
		return ""
	}
	switch b {
	case BasisSciName:
		return t.ScientificName
	case BasisID:
		return t.ID
	case BasisCode:
		return t.Code
	}
	return ""
}

// Mapper binds each external gene-tree node to a species-tree node.
type Mapper struct {
	// StripGeneTree removes gene-tree externals that cannot be mapped
	// instead of failing.
	StripGeneTree bool

	// StripSpeciesTree removes species-tree externals that received no
	// gene-tree mapping.
	StripSpeciesTree bool
}

// MapResult reports the outcome of species mapping.
type MapResult struct {
	// Basis is the comparison basis chosen from the gene tree.
	Basis Basis

	// MappedSpecies holds the species-tree externals that received at
	// least one gene-tree mapping, in gene-tree external order.
	MappedSpecies []*tree.Node

	// StrippedGene holds the gene-tree externals removed because they
	// could not be mapped.
	StrippedGene []*tree.Node
}

// SelectBasis scans the gene tree's externals once and picks the
// comparison basis: scientific name when its count is the maximum, then
// identifier, then code. Fewer than two externals with any taxonomic
// data is an error.
func SelectBasis(gene *tree.Tree) (Basis, error) {
	var nSN, nID, nCode, nAny int
	for _, n := range gene.Externals() {
		t := n.Taxonomy
		if t.IsEmpty() {
			continue
		}
		var any bool
		if t.ScientificName != "" {
			nSN++
			any = true
		}
		if t.HasAppropriateID() {
			nID++
			any = true
		}
		if t.Code != "" {
			nCode++
			any = true
		}
		if any {
			nAny++
		}
	}
	if nAny < 2 {
		return 0, InsufficientTaxonomyError(nAny)
	}

	max := nSN
	if nID > max {
		max = nID
	}
	if nCode > max {
		max = nCode
	}
	switch {
	case nSN == max:
		return BasisSciName, nil
	case nID == max:
		return BasisID, nil
	default:
		return BasisCode, nil
	}
}

// Map selects the comparison basis, links every external gene-tree node
// to its species-tree node, and applies the configured stripping. Both
// trees are re-indexed before returning.
func (m *Mapper) Map(gene, species *tree.Tree) (*MapResult, error) {
	basis, err := SelectBasis(gene)
	if err != nil {
		return nil, err
	}
	res := &MapResult{Basis: basis}

	// species_key -> species_node over all species-tree externals.
	speciesByKey := make(map[string]*tree.Node)
	for _, s := range species.Externals() {
		key := basis.project(s.Taxonomy)
		if key == "" {
			continue
		}
		if _, ok := speciesByKey[key]; ok {
			return nil, DuplicateSpeciesKeyError(basis, key)
		}
		speciesByKey[key] = s
	}

	mapped := make(map[*tree.Node]bool)
	for _, g := range gene.Externals() {
		key := basis.project(g.Taxonomy)
		s := speciesByKey[key]
		if s == nil {
			if m.StripGeneTree {
				res.StrippedGene = append(res.StrippedGene, g)
				continue
			}
			return nil, UnmappedExternalError(g.Label())
		}
		g.Link = s
		if !mapped[s] {
			mapped[s] = true
			res.MappedSpecies = append(res.MappedSpecies, s)
		}
	}

	if len(res.StrippedGene) > 0 {
		gene.RemoveExternals(res.StrippedGene)
	}
	if m.StripSpeciesTree {
		var unmapped []*tree.Node
		for _, s := range species.Externals() {
			if !mapped[s] {
				unmapped = append(unmapped, s)
			}
		}
		species.RemoveExternals(unmapped)
	}
	gene.Reindex()
	species.Reindex()

	return res, nil
}
