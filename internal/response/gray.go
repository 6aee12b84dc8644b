package response

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// Luminance converts an image to 8-bit grayscale using ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B).
//
// If blurRadius is positive, a Gaussian blur of that radius is applied first
// to reduce noise; corner responses are gradient-based and amplify
// single-pixel noise otherwise. A radius of 0 skips the blur.
func Luminance(img image.Image, blurRadius float64) *image.Gray {
	if blurRadius > 0 {
		img = blur.Gaussian(img, blurRadius)
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
			gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(lum)})
		}
	}
	return gray
}
