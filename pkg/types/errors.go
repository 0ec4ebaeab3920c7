package types

import "errors"

// Domain errors for item validation
var (
	// ErrInvalidArgument is returned when a field value violates an item invariant.
	// No state is changed when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")
)
