package gsdi

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnphylo/pkg/errcode"
)

// InsufficientTaxonomyError creates an error for a gene tree without
// enough taxonomic data to choose a comparison basis.
func InsufficientTaxonomyError(externals int) error {
	msg := `Gene tree has taxonomic data on <em>%d</em> external nodes, at least 2 are required

<em>How to fix:</em>
  1. Resolve external node taxonomies before reconciliation
  2. Verify the gene tree has at least two annotated leaves`
	vars := []any{externals}

	return &gn.Error{
		Code: errcode.MapperInsufficientTaxonomyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"insufficient taxonomy: %d annotated externals", externals),
	}
}

// DuplicateSpeciesKeyError creates an error for two species-tree
// externals that project to the same comparison key.
func DuplicateSpeciesKeyError(basis Basis, key string) error {
	msg := `Species tree key <em>%s</em> (%s) is not unique`
	vars := []any{key, basis.String()}

	return &gn.Error{
		Code: errcode.MapperDuplicateKeyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"duplicate species %s key %q", basis, key),
	}
}

// UnmappedExternalError creates an error for a gene-tree external that
// cannot be bound to any species-tree node.
func UnmappedExternalError(label string) error {
	msg := `Gene tree node <em>%s</em> has no matching species

<em>How to fix:</em>
  1. Add the species to the species tree, or
  2. Enable gene tree stripping to drop unmatched nodes`
	vars := []any{label}

	return &gn.Error{
		Code: errcode.MapperUnmappedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("gene node %q has no matching species", label),
	}
}

// InvalidStateError creates an error for a violated GSDI precondition.
// It indicates a bug in the calling pipeline, not bad input data.
func InvalidStateError(detail string) error {
	msg := `Reconciliation precondition violated: <em>%s</em>`
	vars := []any{detail}

	return &gn.Error{
		Code: errcode.GSDIInvalidStateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid state: %s", detail),
	}
}

// CancelledError creates an error for a cancelled reconciliation job.
func CancelledError(err error) error {
	msg := "Reconciliation was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("reconciliation cancelled: %w", err),
	}
}
