package ioancestral

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnphylo/pkg/errcode"
)

// MissingTaxonomyError creates an error for a descendant node that
// carries no resolvable taxonomic identifier.
func MissingTaxonomyError(label string) error {
	msg := `Node <em>%s</em> has no resolvable taxonomy

<em>How to fix:</em>
  1. Resolve external node taxonomies before ancestral inference
  2. Verify the node carries an id, name or code`
	vars := []any{label}

	return &gn.Error{
		Code: errcode.AncestralMissingTaxonomyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("node %q has no resolvable taxonomy", label),
	}
}

// LineageUnavailableError creates an error for a descendant whose
// canonical record could not be obtained or carries no lineage.
func LineageUnavailableError(label string, err error) error {
	msg := `No lineage available for node <em>%s</em>`
	vars := []any{label}

	if err == nil {
		err = fmt.Errorf("empty lineage")
	}
	return &gn.Error{
		Code: errcode.AncestralLineageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no lineage for node %q: %w", label, err),
	}
}

// NoCommonLineageError creates an error for an internal node whose
// descendants share no lineage prefix. The message enumerates all
// descendant lineages.
func NoCommonLineageError(label string, lineages [][]string) error {
	details := make([]string, len(lineages))
	for i, lin := range lineages {
		details[i] = strings.Join(lin, " > ")
	}
	msg := `Descendants of node <em>%s</em> share no common lineage:
%s`
	vars := []any{label, strings.Join(details, "\n")}

	return &gn.Error{
		Code: errcode.AncestralNoCommonLineageError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"no common lineage for node %q: %s",
			label, strings.Join(details, "; "),
		),
	}
}

// CancelledError creates an error for a cancelled inference job.
func CancelledError(err error) error {
	msg := "Ancestral taxonomy inference was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("inference cancelled: %w", err),
	}
}
