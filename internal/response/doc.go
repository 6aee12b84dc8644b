// Package response computes per-pixel feature-strength maps from images.
//
// A response function scores every pixel for "how feature-like" it is; the
// resulting intensity map is the input to local-maximum extraction (package
// extract). Three producers are provided:
//
//   - GradientMagnitude: Sobel gradient magnitude, a cheap edge-strength
//     response useful as a pre-filter for candidate lists
//   - Harris: the Harris corner response det(M) - k*trace(M)^2 over a
//     box-summed structure tensor
//   - ShiTomasi: the minimum eigenvalue of the structure tensor (the
//     "Good Features to Track" response)
//
// All producers consume an 8-bit grayscale image; Luminance converts color
// input using ITU-R BT.601 weights, optionally with Gaussian noise reduction
// first.
//
// # Choosing a Threshold
//
// Response magnitudes depend on image content and the response function, so
// absolute thresholds travel poorly. Stats reports min/max/mean over the
// map; a threshold at a fraction of the maximum (e.g. 0.01–0.1 for Harris)
// is a robust starting point.
package response
