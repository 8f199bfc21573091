// Package parserpool provides a pool of gnparser instances for
// concurrent name canonicalization. This is a pure package - parsing is
// computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Pool canonicalizes scientific names concurrently. The resolvers use
// it as a fallback: when an exact scientific name misses the cache, its
// simple canonical form is tried as an additional key.
type Pool interface {
	// Canonical returns the simple canonical form of a scientific name,
	// or an empty string when the name cannot be parsed. Safe for
	// concurrent use.
	Canonical(nameString string) string

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of
// workers. If jobsNum is 0, it defaults to runtime.NumCPU(). The
// zoological code is used: gene-tree labels are predominantly animal
// taxa, and canonical simple forms are code-insensitive for the
// uninomials and binomials seen here.
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Canonical parses the name with a pooled parser and returns its simple
// canonical form.
func (p *PoolImpl) Canonical(nameString string) string {
	if nameString == "" {
		return ""
	}

	// Get a parser from the pool (blocks if all parsers are busy).
	parser := <-p.ch
	result := parser.ParseName(nameString)
	p.ch <- parser

	if !result.Parsed || result.Canonical == nil {
		return ""
	}
	return result.Canonical.Simple
}

// Close shuts down the parser pool and drains remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
