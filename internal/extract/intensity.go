package extract

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel is the reserved intensity value meaning "exclude this pixel from
// consideration". Writing it into a cell (directly or via Suppress) removes
// that cell both as a potential maximum and as a competitor in neighbor
// comparisons. A common use is marking already-consumed features between
// successive extraction passes.
const Sentinel = float32(math.MaxFloat32)

// IntensityMap is a dense 2D grid of real-valued per-pixel scores, addressed
// by (x, y) with (0, 0) at the top-left corner.
//
// Alongside the float32 backing store the map keeps a validity bitmap, so
// "excluded" is an explicit per-cell bit rather than only a magic value. The
// two stay consistent: Set with the Sentinel value clears the validity bit,
// Set with any other value restores it, and Suppress does both at once.
//
// An IntensityMap is not safe for concurrent mutation. The usual lifecycle
// is: fill (or refresh) the map once per frame, then hand it to a single
// Process call at a time.
type IntensityMap struct {
	w, h   int
	pix    []float32
	valid  []byte // 1 bit per cell, row-major
	stride int    // bytes per bitmap row
}

// NewIntensityMap returns a w×h map with every cell zero and valid.
func NewIntensityMap(w, h int) *IntensityMap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 7) / 8
	m := &IntensityMap{
		w:      w,
		h:      h,
		pix:    make([]float32, w*h),
		valid:  make([]byte, stride*h),
		stride: stride,
	}
	for i := range m.valid {
		m.valid[i] = 0xFF
	}
	return m
}

// NewIntensityMapFromFloats builds a w×h map from row-major values. The
// slice is copied, not aliased. Values equal to Sentinel are marked invalid.
// Extra values are ignored; missing values stay zero.
func NewIntensityMapFromFloats(w, h int, values []float32) *IntensityMap {
	m := NewIntensityMap(w, h)
	n := len(values)
	if n > len(m.pix) {
		n = len(m.pix)
	}
	copy(m.pix, values[:n])
	for i := 0; i < n; i++ {
		if values[i] == Sentinel {
			m.clearValid(i%m.w, i/m.w)
		}
	}
	return m
}

// NewIntensityMapFromGray builds a map from an 8-bit grayscale image, with
// cell values in [0, 255]. Useful for feeding edge-strength images straight
// into extraction.
func NewIntensityMapFromGray(gray *image.Gray) *IntensityMap {
	b := gray.Bounds()
	m := NewIntensityMap(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		row := gray.Pix[(y+b.Min.Y-gray.Rect.Min.Y)*gray.Stride:]
		for x := 0; x < m.w; x++ {
			m.pix[y*m.w+x] = float32(row[x+b.Min.X-gray.Rect.Min.X])
		}
	}
	return m
}

// NewIntensityMapFromDense builds a map from a gonum dense matrix, mapping
// row i, column j to cell (x=j, y=i). Cells holding Sentinel are marked
// invalid, so matrices post-processed with gonum keep the suppression
// convention intact.
func NewIntensityMapFromDense(d *mat.Dense) *IntensityMap {
	rows, cols := d.Dims()
	m := NewIntensityMap(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := float32(d.At(y, x))
			m.pix[y*m.w+x] = v
			if v == Sentinel {
				m.clearValid(x, y)
			}
		}
	}
	return m
}

// Dense returns a copy of the map as a gonum matrix (rows = height). Invalid
// cells are exported as Sentinel.
func (m *IntensityMap) Dense() *mat.Dense {
	d := mat.NewDense(m.h, m.w, nil)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.validAt(x, y) {
				d.Set(y, x, float64(Sentinel))
				continue
			}
			d.Set(y, x, float64(m.pix[y*m.w+x]))
		}
	}
	return d
}

// Width returns the map width in pixels.
func (m *IntensityMap) Width() int { return m.w }

// Height returns the map height in pixels.
func (m *IntensityMap) Height() int { return m.h }

// Bounds returns the image rectangle [0,w)×[0,h).
func (m *IntensityMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.w, m.h)
}

// At returns the value stored at (x, y). Suppressed cells read back as
// Sentinel. Coordinates outside the map fail with ErrOutOfBounds.
func (m *IntensityMap) At(x, y int) (float32, error) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d map", ErrOutOfBounds, x, y, m.w, m.h)
	}
	if !m.validAt(x, y) {
		return Sentinel, nil
	}
	return m.pix[y*m.w+x], nil
}

// Set stores v at (x, y). Storing Sentinel marks the cell invalid; storing
// any other value marks it valid again. Coordinates outside the map fail
// with ErrOutOfBounds.
func (m *IntensityMap) Set(x, y int, v float32) error {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d map", ErrOutOfBounds, x, y, m.w, m.h)
	}
	m.pix[y*m.w+x] = v
	if v == Sentinel {
		m.clearValid(x, y)
	} else {
		m.setValid(x, y)
	}
	return nil
}

// Suppress excludes (x, y) from all further consideration, writing Sentinel
// into the backing store and clearing the validity bit.
func (m *IntensityMap) Suppress(x, y int) error {
	return m.Set(x, y, Sentinel)
}

// Valid reports whether (x, y) is inside the map and not suppressed.
func (m *IntensityMap) Valid(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.validAt(x, y)
}

// Fill sets every cell to v and restores validity (unless v is Sentinel, in
// which case the whole map becomes suppressed).
func (m *IntensityMap) Fill(v float32) {
	for i := range m.pix {
		m.pix[i] = v
	}
	var b byte
	if v != Sentinel {
		b = 0xFF
	}
	for i := range m.valid {
		m.valid[i] = b
	}
}

func (m *IntensityMap) validAt(x, y int) bool {
	return m.valid[y*m.stride+x>>3]&(1<<uint(x&7)) != 0
}

func (m *IntensityMap) setValid(x, y int) {
	m.valid[y*m.stride+x>>3] |= 1 << uint(x&7)
}

func (m *IntensityMap) clearValid(x, y int) {
	m.valid[y*m.stride+x>>3] &^= 1 << uint(x&7)
}
