package tree

// Event classifies an internal gene-tree node after reconciliation
// against a species tree. The zero value means the node has not been
// classified. Counters over events belong to the GSDI result, not to
// the event itself.
type Event int

const (
	// NoEvent marks an unclassified node.
	NoEvent Event = iota

	// Speciation marks a node where the two gene lineages diverge
	// together with a species split.
	Speciation

	// Duplication marks a node where both child lineages trace back
	// into the same species subtree.
	Duplication

	// SpeciationOrDuplication marks a node whose classification cannot
	// be uniquely decided at a multifurcating species-tree node.
	SpeciationOrDuplication
)

var eventNames = map[Event]string{
	NoEvent:                 "none",
	Speciation:              "speciation",
	Duplication:             "duplication",
	SpeciationOrDuplication: "speciation_or_duplication",
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "none"
}
