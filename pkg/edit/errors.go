package edit

import "github.com/pkg/errors"

var (
	// ErrReservedLabel is reported when a reference or value label is
	// about to be deleted.
	ErrReservedLabel = errors.New("reserved label cannot be deleted")
	// ErrChildEditRequired is reported when a footprint item is removed
	// outside child-edit mode.
	ErrChildEditRequired = errors.New("footprint items can only be removed while editing the footprint")
)
