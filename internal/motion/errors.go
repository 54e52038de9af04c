package motion

import "errors"

// Domain errors for controller operations.
var (
	// ErrUnknownAxis indicates a composite operation named an axis outside
	// the fixed axis set. The operation is rejected as a whole; no axis is
	// touched.
	ErrUnknownAxis = errors.New("motion: unknown axis")
)
