package extract

import (
	"fmt"
	"image"
)

// Config holds the tunable extraction parameters. The threshold gate is
// strict: a pixel must exceed Threshold, not merely reach it, so
// exactly-equal plateaus are resolved only by the raster-order tie-break.
type Config struct {
	// Threshold is the minimum response a pixel must exceed to be a feature.
	Threshold float32

	// IgnoreBorder is the margin, in pixels from each image edge, excluded
	// from feature locations (margin pixels still compete as neighbors).
	IgnoreBorder int

	// SearchRadius is the half-width of the square comparison window: a
	// feature must not be exceeded by any pixel within Chebyshev distance
	// SearchRadius.
	SearchRadius int
}

// Extractor finds local-maximum features in an intensity map.
//
// The variant (dense or candidate-driven) and its capability flags are fixed
// at construction; the numeric parameters can be changed between calls via
// the setters and take effect on the next Process call. Configuration is
// validated at call time, since the image size is only known per call.
type Extractor interface {
	// Process scans intensity and appends accepted features to found.
	// candidates must be non-nil exactly when UsesCandidates reports true.
	// On error, found may hold a partial result.
	Process(intensity *IntensityMap, candidates, found *PointSet) error

	// UsesCandidates reports whether this variant requires a candidate list.
	UsesCandidates() bool

	// CanDetectBorder reports whether this instance can report maxima whose
	// comparison window is clipped by the true image edge. When false, such
	// pixels are never evaluated even inside the processing rectangle.
	CanDetectBorder() bool

	Threshold() float32
	SetThreshold(t float32)
	IgnoreBorder() int
	SetIgnoreBorder(border int)
	SearchRadius() int
	SetSearchRadius(radius int)
}

// Option selects a fixed structural capability at construction time.
type Option func(*extractorBase)

// WithBorderDetection lets the extractor evaluate pixels whose comparison
// window extends past the true image edge, clipping the window to the
// available extent. Without it such pixels are skipped, guaranteeing every
// reported feature has a full window of image data around it.
func WithBorderDetection() Option {
	return func(e *extractorBase) { e.detectBorder = true }
}

// WithSuppression makes Process overwrite each accepted cell with Sentinel,
// so an external caller can run successive passes that never re-find the
// same peaks. The sentinels are written only after the scan finishes, so
// acceptance within a single Process call is always judged against the map
// as supplied. Without this option the extractor only reads the map.
func WithSuppression() Option {
	return func(e *extractorBase) { e.suppressFound = true }
}

// extractorBase carries the configuration and the acceptance test shared by
// both variants.
type extractorBase struct {
	cfg           Config
	detectBorder  bool
	suppressFound bool
}

func (e *extractorBase) CanDetectBorder() bool { return e.detectBorder }

func (e *extractorBase) Threshold() float32     { return e.cfg.Threshold }
func (e *extractorBase) SetThreshold(t float32) { e.cfg.Threshold = t }
func (e *extractorBase) IgnoreBorder() int      { return e.cfg.IgnoreBorder }
func (e *extractorBase) SetIgnoreBorder(b int)  { e.cfg.IgnoreBorder = b }
func (e *extractorBase) SearchRadius() int      { return e.cfg.SearchRadius }
func (e *extractorBase) SetSearchRadius(r int)  { e.cfg.SearchRadius = r }

// validate checks the per-call compatibility of configuration and image and
// returns the processing rectangle.
func (e *extractorBase) validate(m *IntensityMap, found *PointSet) (image.Rectangle, error) {
	if m == nil {
		return image.Rectangle{}, fmt.Errorf("%w: nil intensity map", ErrInvalidConfiguration)
	}
	if found == nil {
		return image.Rectangle{}, fmt.Errorf("%w: nil output point set", ErrInvalidConfiguration)
	}
	if e.cfg.SearchRadius < 0 {
		return image.Rectangle{}, fmt.Errorf("%w: negative search radius %d", ErrInvalidConfiguration, e.cfg.SearchRadius)
	}
	return ProcessingRect(m.w, m.h, e.cfg.IgnoreBorder)
}

// isMax is the acceptance test shared by both variants: (x, y) must be
// valid, exceed the threshold, and not be beaten by any neighbor within the
// search window. An equal-valued neighbor beats (x, y) only when it precedes
// it in raster order, so each plateau reports exactly once.
func (e *extractorBase) isMax(m *IntensityMap, x, y int) bool {
	if !m.validAt(x, y) {
		return false
	}
	v := m.pix[y*m.w+x]
	if v == Sentinel || v <= e.cfg.Threshold {
		return false
	}

	r := e.cfg.SearchRadius
	x0, y0 := x-r, y-r
	x1, y1 := x+r, y+r
	if x0 < 0 || y0 < 0 || x1 >= m.w || y1 >= m.h {
		if !e.detectBorder {
			return false
		}
		// Fall back to the window clipped at the true image edge.
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 >= m.w {
			x1 = m.w - 1
		}
		if y1 >= m.h {
			y1 = m.h - 1
		}
	}

	for ny := y0; ny <= y1; ny++ {
		row := ny * m.w
		for nx := x0; nx <= x1; nx++ {
			if nx == x && ny == y {
				continue
			}
			if !m.validAt(nx, ny) {
				continue
			}
			nv := m.pix[row+nx]
			if nv == Sentinel {
				continue
			}
			if nv > v {
				return false
			}
			if nv == v && (ny < y || (ny == y && nx < x)) {
				return false
			}
		}
	}
	return true
}

// applySuppression consumes every cell accepted during this call, from
// index start onward in found. It runs after the scan, never during it: a
// cell suppressed mid-scan would stop competing against later pixels and a
// dominated pixel could slip through as a maximum.
func (e *extractorBase) applySuppression(m *IntensityMap, found *PointSet, start int) {
	if !e.suppressFound {
		return
	}
	for i := start; i < found.Len(); i++ {
		p := found.Get(i)
		m.clearValid(p.X, p.Y)
		m.pix[p.Y*m.w+p.X] = Sentinel
	}
}

// denseExtractor scans every pixel of the processing rectangle.
type denseExtractor struct {
	extractorBase
}

// NewDenseExtractor returns an extractor that tests every pixel inside the
// processing rectangle, reporting features in raster-scan order.
func NewDenseExtractor(cfg Config, opts ...Option) Extractor {
	e := &denseExtractor{extractorBase{cfg: cfg}}
	for _, opt := range opts {
		opt(&e.extractorBase)
	}
	return e
}

func (e *denseExtractor) UsesCandidates() bool { return false }

func (e *denseExtractor) Process(intensity *IntensityMap, candidates, found *PointSet) error {
	if candidates != nil {
		return fmt.Errorf("%w: candidate list supplied to a dense extractor", ErrInvalidConfiguration)
	}
	rect, err := e.validate(intensity, found)
	if err != nil {
		return err
	}
	start := found.Len()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !e.isMax(intensity, x, y) {
				continue
			}
			if err := found.Add(Point{X: x, Y: y}); err != nil {
				e.applySuppression(intensity, found, start)
				return err
			}
		}
	}
	e.applySuppression(intensity, found, start)
	return nil
}

// candidateExtractor tests only caller-supplied candidate pixels, in list
// order. Neighbors still come from the full map, so its output is a subset
// of the dense result on the same map and configuration.
type candidateExtractor struct {
	extractorBase
}

// NewCandidateExtractor returns an extractor that evaluates only the pixels
// in the candidate list passed to Process, reporting features in candidate
// order. Candidates inside the image but outside the processing rectangle
// are silently skipped; candidates outside the image fail the call with
// ErrOutOfBounds.
func NewCandidateExtractor(cfg Config, opts ...Option) Extractor {
	e := &candidateExtractor{extractorBase{cfg: cfg}}
	for _, opt := range opts {
		opt(&e.extractorBase)
	}
	return e
}

func (e *candidateExtractor) UsesCandidates() bool { return true }

func (e *candidateExtractor) Process(intensity *IntensityMap, candidates, found *PointSet) error {
	if candidates == nil {
		return fmt.Errorf("%w: candidate extractor requires a candidate list", ErrInvalidConfiguration)
	}
	rect, err := e.validate(intensity, found)
	if err != nil {
		return err
	}
	start := found.Len()
	for i := 0; i < candidates.Len(); i++ {
		p := candidates.Get(i)
		if p.X < 0 || p.Y < 0 || p.X >= intensity.w || p.Y >= intensity.h {
			e.applySuppression(intensity, found, start)
			return fmt.Errorf("%w: candidate %d at (%d,%d) outside %dx%d image",
				ErrOutOfBounds, i, p.X, p.Y, intensity.w, intensity.h)
		}
		if p.X < rect.Min.X || p.Y < rect.Min.Y || p.X >= rect.Max.X || p.Y >= rect.Max.Y {
			continue
		}
		if !e.isMax(intensity, p.X, p.Y) {
			continue
		}
		if err := found.Add(Point{X: p.X, Y: p.Y}); err != nil {
			e.applySuppression(intensity, found, start)
			return err
		}
	}
	e.applySuppression(intensity, found, start)
	return nil
}
