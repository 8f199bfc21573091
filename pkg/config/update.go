package config

import (
	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Used for round-tripping Config values between callers.
func (c *Config) ToOptions() []Option {
	var res []Option

	if c.CacheMaxEntries > 0 {
		res = append(res, OptCacheMaxEntries(c.CacheMaxEntries))
	}
	if c.MaxResultsDetail > 0 {
		res = append(res, OptMaxResultsDetail(c.MaxResultsDetail))
	}
	if c.MaxResultsAncestral > 0 {
		res = append(res, OptMaxResultsAncestral(c.MaxResultsAncestral))
	}
	res = append(res, OptMostParsimoniousDuplication(c.MostParsimoniousDuplication))
	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	if c.Log.Format != "" {
		res = append(res, OptLogFormat(c.Log.Format))
	}
	if c.Log.Level != "" {
		res = append(res, OptLogLevel(c.Log.Level))
	}

	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":  {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format": {"json": s, "text": s, "tint": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn("<em>%s</em> does not support '%s' as a value, ignoring", name, val)
	return false
}
