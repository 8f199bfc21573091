package taxonomy

// ranks holds the accepted rank vocabulary, from inclusive to exclusive.
var ranks = []string{
	"domain",
	"superkingdom",
	"kingdom",
	"subkingdom",
	"superphylum",
	"phylum",
	"subphylum",
	"superclass",
	"class",
	"subclass",
	"infraclass",
	"superorder",
	"order",
	"suborder",
	"infraorder",
	"parvorder",
	"superfamily",
	"family",
	"subfamily",
	"tribe",
	"subtribe",
	"genus",
	"subgenus",
	"section",
	"subsection",
	"species group",
	"species subgroup",
	"species",
	"subspecies",
	"variety",
	"form",
	"unranked",
}

var rankSet = func() map[string]struct{} {
	res := make(map[string]struct{}, len(ranks))
	for _, r := range ranks {
		res[r] = struct{}{}
	}
	return res
}()

// IsRank reports whether s is a known, already lowercased rank name.
func IsRank(s string) bool {
	_, ok := rankSet[s]
	return ok
}
