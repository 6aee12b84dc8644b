package extract

import "errors"

// Error taxonomy for Process and the container primitives. All errors
// returned by this package wrap one of these sentinels, so callers can
// classify failures with errors.Is regardless of the message detail.
var (
	// ErrInvalidConfiguration indicates the extractor configuration is
	// incompatible with the supplied image (border or radius leaves no valid
	// interior) or the candidate list does not match the variant.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfBounds indicates a coordinate outside the image extent.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrResourceExhausted indicates the output point set cannot grow
	// further because its capacity bound was reached.
	ErrResourceExhausted = errors.New("point storage exhausted")
)
