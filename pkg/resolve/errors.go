package resolve

import (
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnphylo/pkg/errcode"
)

// IsUnresolved reports whether err is a non-fatal per-node resolution
// failure: the query matched zero records or several where exactly one
// was required. All other errors (service, network, cancellation) abort
// the whole job.
func IsUnresolved(err error) bool {
	var ge *gn.Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.Code == errcode.ResolverNotFoundError ||
		ge.Code == errcode.ResolverAmbiguousError
}
