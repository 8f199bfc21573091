// Package config provides configuration management for GNphylo.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
//
// The core reads no CLI flags, environment variables, or files. Embedding
// applications construct a Config, apply Options, and pass it down.
package config

import (
	"runtime"
)

// Config represents the complete GNphylo configuration.
type Config struct {
	// CacheMaxEntries is the capacity of each facet of the taxonomy cache.
	// A facet that has reached this size is cleared wholesale by the next
	// capacity check.
	CacheMaxEntries int `mapstructure:"cache_max_entries" yaml:"cache_max_entries"`

	// MaxResultsDetail caps the number of records requested from the
	// taxonomy service for direct (id, name, code) lookups. Queries that
	// return more than one record are treated as ambiguous.
	MaxResultsDetail int `mapstructure:"max_results_detail" yaml:"max_results_detail"`

	// MaxResultsAncestral caps the number of records requested for
	// lineage disambiguation, where many same-named taxa are expected.
	MaxResultsAncestral int `mapstructure:"max_results_ancestral" yaml:"max_results_ancestral"`

	// MostParsimoniousDuplication selects the duplication model for GSDI.
	// When true, events that cannot be decided at a multifurcating
	// species-tree node are labeled as duplications; when false they are
	// labeled as ambiguous speciation-or-duplication events.
	MostParsimoniousDuplication bool `mapstructure:"most_parsimonious_duplication" yaml:"most_parsimonious_duplication"`

	// JobsNumber is the number of concurrent workers for cache warming.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		CacheMaxEntries:     MaxCacheEntries,
		MaxResultsDetail:    MaxResultsDetail,
		MaxResultsAncestral: MaxResultsAncestral,
		JobsNumber:          runtime.NumCPU(),
		Log: LogConfig{
			Format: "tint",
			Level:  "info",
		},
	}
	return res
}
