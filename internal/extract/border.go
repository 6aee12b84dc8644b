package extract

import (
	"fmt"
	"image"
)

// ProcessingRect returns the rectangle of pixels eligible to be reported as
// features: the w×h image shrunk by the ignore-border margin on every edge.
//
// Pixels in the margin are excluded as feature locations but still
// participate as neighbor data during comparison. A margin that leaves no
// interior at all (2*border >= w or 2*border >= h) fails with
// ErrInvalidConfiguration; a margin leaving a single interior pixel is
// valid.
func ProcessingRect(w, h, border int) (image.Rectangle, error) {
	if border < 0 {
		return image.Rectangle{}, fmt.Errorf("%w: negative ignore border %d", ErrInvalidConfiguration, border)
	}
	if 2*border >= w || 2*border >= h {
		return image.Rectangle{}, fmt.Errorf("%w: ignore border %d leaves no interior in %dx%d image",
			ErrInvalidConfiguration, border, w, h)
	}
	return image.Rect(border, border, w-border, h-border), nil
}
