package config

var (
	// AppName is used in log records and notifications.
	AppName = "gnphylo"
)

const (
	// MaxCacheEntries is the default per-facet capacity of the taxonomy
	// cache. A facet that has reached this size is cleared wholesale by
	// the next capacity check.
	MaxCacheEntries = 100_000

	// MaxResultsDetail is the default result cap for direct taxonomy
	// lookups by id, scientific name, code or common name.
	MaxResultsDetail = 10

	// MaxResultsAncestral is the default result cap for lineage
	// disambiguation queries, which fan out over same-named taxa.
	MaxResultsAncestral = 100
)
