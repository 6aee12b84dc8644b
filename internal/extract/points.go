package extract

import "fmt"

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// PointSet is an append-only, order-preserving collection of points. It is
// used both as the optional candidate input to an extractor and as its
// output feature list.
//
// A PointSet is owned by the caller: the caller allocates and resets it, and
// an extractor only appends during a Process call. Insertion order is the
// order features are reported in; there is no further ordering guarantee.
type PointSet struct {
	pts   []Point
	limit int
}

// NewPointSet returns an empty, unbounded point set.
func NewPointSet() *PointSet {
	return &PointSet{}
}

// NewBoundedPointSet returns an empty point set that refuses to grow beyond
// limit points. Add fails with ErrResourceExhausted once the bound is hit,
// which callers can use to cap per-frame feature counts.
func NewBoundedPointSet(limit int) *PointSet {
	if limit < 0 {
		limit = 0
	}
	return &PointSet{pts: make([]Point, 0, limit), limit: limit}
}

// Add appends p, preserving insertion order.
func (s *PointSet) Add(p Point) error {
	if s.limit > 0 && len(s.pts) >= s.limit {
		return fmt.Errorf("%w: point set bounded at %d", ErrResourceExhausted, s.limit)
	}
	s.pts = append(s.pts, p)
	return nil
}

// Len returns the number of points in the set.
func (s *PointSet) Len() int { return len(s.pts) }

// Get returns the i-th point in insertion order. It panics if i is out of
// range, matching slice semantics.
func (s *PointSet) Get(i int) Point { return s.pts[i] }

// Points returns the underlying slice in insertion order. The slice aliases
// the set's storage; callers who keep it across a Reset must copy first.
func (s *PointSet) Points() []Point { return s.pts }

// Reset empties the set, retaining capacity.
func (s *PointSet) Reset() { s.pts = s.pts[:0] }
