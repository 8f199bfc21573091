package ioresolve

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnphylo/pkg/errcode"
	"github.com/gnames/gnphylo/pkg/taxsearch"
)

// NotFoundError creates an error for a query with zero matches.
func NotFoundError(facet taxsearch.Facet, query string) error {
	msg := `No taxonomy found for <em>%s</em> query '%s'`
	vars := []any{facet.String(), query}

	return &gn.Error{
		Code: errcode.ResolverNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"no taxonomy for %s query %q", facet, query),
	}
}

// AmbiguousError creates an error for a query that matched several
// records where exactly one was required.
func AmbiguousError(facet taxsearch.Facet, query string, count int) error {
	msg := `Taxonomy <em>%s</em> query '%s' is not unique: %d matches`
	vars := []any{facet.String(), query, count}

	return &gn.Error{
		Code: errcode.ResolverAmbiguousError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%s query %q is ambiguous: %d matches", facet, query, count),
	}
}

// LineageNotFoundError creates an error for a lineage with zero
// matching records.
func LineageNotFoundError(path string) error {
	msg := `Lineage <em>%s</em> not found`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ResolverNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("lineage %q not found", path),
	}
}

// LineageAmbiguousError creates an error for a lineage matched by more
// than one record.
func LineageAmbiguousError(path string, count int) error {
	msg := `Lineage <em>%s</em> is not unique: %d matches`
	vars := []any{path, count}

	return &gn.Error{
		Code: errcode.ResolverAmbiguousError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("lineage %q is not unique: %d matches", path, count),
	}
}

// ServiceError creates an error for a failed taxonomy service call.
// All retries and timeouts are the service adapter's concern; by the
// time this error is created the call is considered exhausted.
func ServiceError(facet taxsearch.Facet, query string, err error) error {
	msg := `Taxonomy service failed on <em>%s</em> query '%s'`
	vars := []any{facet.String(), query}

	return &gn.Error{
		Code: errcode.ResolverServiceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxonomy service: %w", err),
	}
}

// CancelledError creates an error for a cancelled resolution job.
func CancelledError(err error) error {
	msg := "Taxonomy resolution was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("resolution cancelled: %w", err),
	}
}
