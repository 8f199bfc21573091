package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Tree errors
	TreeInvalidStateError

	// Resolver errors
	ResolverNetworkError
	ResolverServiceError
	ResolverAmbiguousError
	ResolverNotFoundError

	// Ancestral inference errors
	AncestralMissingTaxonomyError
	AncestralLineageError
	AncestralNoCommonLineageError

	// Species mapper errors
	MapperInsufficientTaxonomyError
	MapperDuplicateKeyError
	MapperUnmappedError

	// GSDI errors
	GSDIInvalidStateError

	// Cancellation
	CancelledError
)
