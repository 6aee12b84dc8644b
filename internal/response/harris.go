package response

import (
	"image"
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
)

// DefaultHarrisK is the conventional Harris sensitivity constant. Lower
// values report more (weaker) corners, higher values fewer.
const DefaultHarrisK = 0.04

// structureTensor computes the box-summed second-moment matrix entries
// (sum of Ix*Ix, Iy*Iy, Ix*Iy over a (2r+1)^2 window) for every pixel.
func structureTensor(gray *image.Gray, radius int) (sxx, syy, sxy []float64, w, h int) {
	ix, iy, w, h := sobelGradients(gray)

	ixx := make([]float64, w*h)
	iyy := make([]float64, w*h)
	ixy := make([]float64, w*h)
	for i := range ix {
		ixx[i] = ix[i] * ix[i]
		iyy[i] = iy[i] * iy[i]
		ixy[i] = ix[i] * iy[i]
	}

	sxx = make([]float64, w*h)
	syy = make([]float64, w*h)
	sxy = make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var a, b, c float64
			for dy := -radius; dy <= radius; dy++ {
				ny := clamp(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					nx := clamp(x+dx, 0, w-1)
					a += ixx[ny*w+nx]
					b += iyy[ny*w+nx]
					c += ixy[ny*w+nx]
				}
			}
			sxx[y*w+x] = a
			syy[y*w+x] = b
			sxy[y*w+x] = c
		}
	}
	return sxx, syy, sxy, w, h
}

// Harris computes the Harris corner response det(M) - k*trace(M)^2, where M
// is the structure tensor summed over a (2*windowRadius+1)^2 window.
//
// The response is strongly positive at corners, negative along edges, and
// near zero in flat regions, so a small positive threshold separates corners
// cleanly. If k is zero or negative, DefaultHarrisK is used; windowRadius
// below 1 is raised to 1.
func Harris(gray *image.Gray, k float64, windowRadius int) *extract.IntensityMap {
	if k <= 0 {
		k = DefaultHarrisK
	}
	if windowRadius < 1 {
		windowRadius = 1
	}
	sxx, syy, sxy, w, h := structureTensor(gray, windowRadius)

	values := make([]float32, w*h)
	for i := range values {
		det := sxx[i]*syy[i] - sxy[i]*sxy[i]
		trace := sxx[i] + syy[i]
		values[i] = float32(det - k*trace*trace)
	}
	return extract.NewIntensityMapFromFloats(w, h, values)
}

// ShiTomasi computes the minimum-eigenvalue corner response of the structure
// tensor (the "Good Features to Track" criterion). It is non-negative
// everywhere: near zero in flat regions and along edges, large only where
// the gradient varies in both directions. windowRadius below 1 is raised
// to 1.
func ShiTomasi(gray *image.Gray, windowRadius int) *extract.IntensityMap {
	if windowRadius < 1 {
		windowRadius = 1
	}
	sxx, syy, sxy, w, h := structureTensor(gray, windowRadius)

	values := make([]float32, w*h)
	for i := range values {
		trace := sxx[i] + syy[i]
		disc := math.Sqrt((sxx[i]-syy[i])*(sxx[i]-syy[i]) + 4*sxy[i]*sxy[i])
		values[i] = float32((trace - disc) / 2)
	}
	return extract.NewIntensityMapFromFloats(w, h, values)
}
