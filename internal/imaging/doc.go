// Package imaging provides the image-facing support operations for the MCP
// server: loading and caching source images, extracting feature patches, and
// rendering detected features back onto images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Feature coordinates coming from package extract use the same convention,
// so they can be passed through unchanged.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. FeaturePatch and
// MarkFeatures are stateless and never mutate their input image; they can
// run concurrently on the same cached image.
//
// # Encoded Results
//
// Operations that produce an image return it base64-PNG encoded inside a
// result struct, alongside its dimensions, so tool responses are
// self-describing and transport-safe over the stdio protocol.
package imaging
