// Package extract implements local-maximum point feature extraction from
// dense 2D intensity maps.
//
// Given a per-pixel "how feature-like is this pixel" response (produced by a
// corner-strength operator or any other response function), this package
// finds the small, non-redundant set of peak locations: pixels whose value
// clears a threshold and is not exceeded by any neighbor within a square
// window of configurable radius.
//
// # Extractor Variants
//
// Two scan strategies are provided, fixed at construction time:
//
//   - Dense (NewDenseExtractor): every pixel in the processing rectangle is
//     tested.
//   - Candidate (NewCandidateExtractor): only caller-supplied candidate
//     pixels are tested, as a performance optimization when a cheaper
//     pre-filter has already narrowed the search. Neighbors are still drawn
//     from the full map, so the result is a subset of the dense result.
//
// Construction options select further fixed capabilities: WithBorderDetection
// allows peaks whose comparison window is clipped by the true image edge, and
// WithSuppression overwrites accepted cells with Sentinel (after the scan, so
// the current pass is unaffected) letting a caller run successive extraction
// passes without re-finding the same peaks.
//
// # Processing Rectangle and Tie-Breaks
//
// Features are only reported inside the image shrunk by the ignore-border
// margin; pixels in the margin still count as competitors, since they are
// real image data. Equal-valued plateaus report exactly one point: the
// raster-order-first pixel of the plateau wins, all others are suppressed.
// Output order is scan order (raster order for dense, candidate-list order
// for sparse) and is never sorted by intensity.
//
// # Sentinel Convention
//
// A cell holding Sentinel (or suppressed via IntensityMap.Suppress) is
// excluded from consideration entirely: it can never be reported and never
// blocks a neighbor. Callers may write Sentinel into already-consumed cells
// between passes.
//
// # Error Handling
//
// Process reports three error classes, all detectable with errors.Is:
//
//   - ErrInvalidConfiguration: border/radius incompatible with the image
//     size, or a candidate list supplied/omitted inconsistently with the
//     variant
//   - ErrOutOfBounds: a coordinate outside the image extent
//   - ErrResourceExhausted: the output PointSet's capacity bound was hit
//
// On error the output PointSet may hold a partial result; callers should
// Reset it before retrying.
//
// # Concurrency
//
// Extractors perform no internal threading. A Process call is pure
// computation over caller-owned memory: the IntensityMap and both PointSets
// must not be mutated by other goroutines for the duration of the call.
package extract
