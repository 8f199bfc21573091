package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCacheMaxEntries sets the per-facet capacity of the taxonomy cache.
func OptCacheMaxEntries(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache Max Entries", i) {
			c.CacheMaxEntries = i
		}
	}
}

// OptMaxResultsDetail sets the result cap for direct taxonomy lookups.
func OptMaxResultsDetail(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Results Detail", i) {
			c.MaxResultsDetail = i
		}
	}
}

// OptMaxResultsAncestral sets the result cap for lineage disambiguation.
func OptMaxResultsAncestral(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Results Ancestral", i) {
			c.MaxResultsAncestral = i
		}
	}
}

// OptMostParsimoniousDuplication selects the duplication model for GSDI.
func OptMostParsimoniousDuplication(b bool) Option {
	return func(c *Config) {
		c.MostParsimoniousDuplication = b
	}
}

// OptJobsNumber sets the number of concurrent workers for cache warming.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptLogFormat sets the log format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the log level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}
