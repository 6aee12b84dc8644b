package response

import (
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
)

// MapStats summarizes the valid cells of an intensity map. It is the basis
// for relative thresholding: response magnitudes vary wildly with image
// content, so thresholds are best expressed as a fraction of Max.
type MapStats struct {
	// Min is the smallest valid cell value.
	Min float64 `json:"min"`

	// Max is the largest valid cell value.
	Max float64 `json:"max"`

	// Mean is the arithmetic mean over valid cells.
	Mean float64 `json:"mean"`

	// ValidCells counts cells not suppressed with the sentinel.
	ValidCells int `json:"valid_cells"`
}

// Stats scans the map once and reports min/max/mean over its valid cells.
// A map with no valid cells reports zero values.
func Stats(m *extract.IntensityMap) MapStats {
	s := MapStats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.Valid(x, y) {
				continue
			}
			v, err := m.At(x, y)
			if err != nil {
				continue
			}
			f := float64(v)
			if f < s.Min {
				s.Min = f
			}
			if f > s.Max {
				s.Max = f
			}
			sum += f
			s.ValidCells++
		}
	}
	if s.ValidCells == 0 {
		return MapStats{}
	}
	s.Mean = sum / float64(s.ValidCells)
	return s
}
