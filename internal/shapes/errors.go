package shapes

import "errors"

var (
	// ErrUnknownShape indicates an unrecognized shape identifier.
	ErrUnknownShape = errors.New("shapes: unknown pulse shape")

	// ErrInvalidParameter indicates an out-of-range generation parameter.
	ErrInvalidParameter = errors.New("shapes: invalid parameter")
)
