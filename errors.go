package easydisplay

import "errors"

// Errors returned by the display session.
var (
	// ErrConfig reports an invalid or contradictory session configuration,
	// such as a missing font or a format that cannot render in the
	// session's pixel mode.
	ErrConfig = errors.New("easydisplay: invalid configuration")

	// ErrOutOfRange reports a coordinate or size outside the range the
	// session can address.
	ErrOutOfRange = errors.New("easydisplay: out of range")
)
