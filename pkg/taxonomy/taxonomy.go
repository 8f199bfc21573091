// Package taxonomy defines the taxonomy record shared by tree nodes,
// the taxonomy cache and the resolvers.
//
// This is a pure package - no I/O, no network calls.
package taxonomy

import (
	"slices"
	"strings"

	"github.com/gnames/gnfmt"
)

// Recognized identifier providers (compared case-insensitively).
const (
	ProviderNCBI      = "ncbi"
	ProviderUniProt   = "uniprot"
	ProviderUniProtKB = "uniprotkb"
)

// LineageSeparator joins lineage elements into a single cache key.
const LineageSeparator = ">"

// Taxonomy is a taxonomic record attached to a tree node or returned by
// a taxonomy service. A zero value is a valid, empty record.
type Taxonomy struct {
	// ID is the identifier value assigned by Provider, for example an
	// NCBI taxid or a UniProt mnemonic.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Provider names the authority that issued ID.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// ScientificName is the latinized name, for example "Drosophila".
	ScientificName string `json:"scientific_name,omitempty" yaml:"scientific_name,omitempty"`

	// Code is the short taxonomy code, for example "DROME".
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// CommonName is the vernacular name, for example "fruit fly".
	CommonName string `json:"common_name,omitempty" yaml:"common_name,omitempty"`

	// Rank is the Linnean rank, stored lowercased. Set it through
	// SetRank which validates against the known rank vocabulary.
	Rank string `json:"rank,omitempty" yaml:"rank,omitempty"`

	// Synonyms is an ordered set of alternative names.
	Synonyms []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`

	// Lineage is the classification path from the kingdom-ward root down
	// to the taxon itself, for example
	// ["Eukaryota", "Metazoa", "Drosophila"].
	Lineage []string `json:"lineage,omitempty" yaml:"lineage,omitempty"`
}

// New returns an empty taxonomy record.
func New() *Taxonomy {
	return &Taxonomy{}
}

// HasAppropriateID reports whether the record carries a non-empty
// identifier from a recognized provider.
func (t *Taxonomy) HasAppropriateID() bool {
	if t.ID == "" {
		return false
	}
	switch strings.ToLower(t.Provider) {
	case ProviderNCBI, ProviderUniProt, ProviderUniProtKB:
		return true
	}
	return false
}

// SetRank stores a lowercased rank. An unknown rank leaves the field
// empty.
func (t *Taxonomy) SetRank(rank string) {
	rank = strings.ToLower(strings.TrimSpace(rank))
	if IsRank(rank) {
		t.Rank = rank
		return
	}
	t.Rank = ""
}

// AddSynonym appends a synonym unless it is empty or already present.
func (t *Taxonomy) AddSynonym(s string) {
	if s == "" || slices.Contains(t.Synonyms, s) {
		return
	}
	t.Synonyms = append(t.Synonyms, s)
}

// SetLineage replaces the lineage, dropping empty elements.
func (t *Taxonomy) SetLineage(lineage []string) {
	res := make([]string, 0, len(lineage))
	for _, l := range lineage {
		if l != "" {
			res = append(res, l)
		}
	}
	t.Lineage = res
}

// LineagePath returns the lineage joined with the ">" separator. It is
// the key of the lineage facet of the taxonomy cache.
func (t *Taxonomy) LineagePath() string {
	return strings.Join(t.Lineage, LineageSeparator)
}

// Equal reports field-wise equality of identifier, scientific name,
// code, common name, rank and lineage. Synonyms do not participate.
func (t *Taxonomy) Equal(o *Taxonomy) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.ID == o.ID &&
		t.Provider == o.Provider &&
		t.ScientificName == o.ScientificName &&
		t.Code == o.Code &&
		t.CommonName == o.CommonName &&
		t.Rank == o.Rank &&
		slices.Equal(t.Lineage, o.Lineage)
}

// Clone returns a deep copy of the record. Mutating the copy never
// affects the original.
func (t *Taxonomy) Clone() *Taxonomy {
	if t == nil {
		return nil
	}
	res := *t
	res.Synonyms = slices.Clone(t.Synonyms)
	res.Lineage = slices.Clone(t.Lineage)
	return &res
}

// IsEmpty reports whether the record carries no data at all.
func (t *Taxonomy) IsEmpty() bool {
	return t == nil || (t.ID == "" && t.ScientificName == "" &&
		t.Code == "" && t.CommonName == "" && t.Rank == "" &&
		len(t.Synonyms) == 0 && len(t.Lineage) == 0)
}

// HasResolvableFacet reports whether at least one of the lookup facets
// (id, scientific name, code, common name) is populated.
func (t *Taxonomy) HasResolvableFacet() bool {
	if t == nil {
		return false
	}
	return t.HasAppropriateID() || t.ScientificName != "" ||
		t.Code != "" || t.CommonName != ""
}

// Label returns a human-readable string form of the record: the
// scientific name, falling back to code, common name, and identifier.
func (t *Taxonomy) Label() string {
	switch {
	case t == nil:
		return ""
	case t.ScientificName != "":
		return t.ScientificName
	case t.Code != "":
		return t.Code
	case t.CommonName != "":
		return t.CommonName
	default:
		return t.ID
	}
}

// String implements fmt.Stringer.
func (t *Taxonomy) String() string {
	return t.Label()
}

// Encode serializes the record to JSON. Serialized records round-trip
// through Decode without loss.
func (t *Taxonomy) Encode() ([]byte, error) {
	enc := gnfmt.GNjson{}
	return enc.Encode(t)
}

// Decode restores a record serialized with Encode.
func Decode(data []byte) (*Taxonomy, error) {
	enc := gnfmt.GNjson{}
	var res Taxonomy
	err := enc.Decode(data, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
