package response

import (
	"image"
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
)

// sobelGradients computes horizontal and vertical Sobel derivatives of a
// grayscale image, replicating edge pixels so the result covers the full
// extent. Returned slices are row-major w*h.
func sobelGradients(gray *image.Gray) (ix, iy []float64, w, h int) {
	b := gray.Bounds()
	w, h = b.Dx(), b.Dy()
	ix = make([]float64, w*h)
	iy = make([]float64, w*h)

	at := func(x, y int) float64 {
		x = clamp(x, 0, w-1)
		y = clamp(y, 0, h-1)
		return float64(gray.Pix[y*gray.Stride+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			ix[y*w+x] = gx
			iy[y*w+x] = gy
		}
	}
	return ix, iy, w, h
}

// GradientMagnitude scores each pixel by its Sobel gradient magnitude
// sqrt(gx^2 + gy^2). It responds to edges rather than corners, which makes
// it a cheap pre-filter for building candidate lists.
func GradientMagnitude(gray *image.Gray) *extract.IntensityMap {
	ix, iy, w, h := sobelGradients(gray)
	values := make([]float32, w*h)
	for i := range values {
		values[i] = float32(math.Sqrt(ix[i]*ix[i] + iy[i]*iy[i]))
	}
	return extract.NewIntensityMapFromFloats(w, h, values)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
