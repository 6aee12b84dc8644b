package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
)

// OverlayResult contains the source image with feature markers drawn on it,
// encoded as base64 PNG.
type OverlayResult struct {
	// Width and Height match the source image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// FeatureCount is the number of markers drawn.
	FeatureCount int `json:"feature_count"`

	// ImageBase64 is the annotated image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// MarkFeatures draws a cross marker at every feature location and returns
// the annotated image as a PNG.
//
// When colorHex is a "#RRGGBB" string, all markers use that color. When it
// is empty and strengths are supplied (same length as points), markers are
// colored on a blue-to-red ramp by relative strength, blended in HCL space
// so the perceptual midpoints stay readable. With neither, markers default
// to red.
func MarkFeatures(img image.Image, points []extract.Point, strengths []float64, markerRadius int, colorHex string) (*OverlayResult, error) {
	if strengths != nil && len(strengths) != len(points) {
		return nil, fmt.Errorf("got %d strengths for %d points", len(strengths), len(points))
	}
	if markerRadius < 1 {
		markerRadius = 3
	}

	var fixed color.RGBA
	useRamp := false
	switch {
	case colorHex != "":
		c, err := colorful.Hex(colorHex)
		if err != nil {
			return nil, fmt.Errorf("invalid marker color %q: %w", colorHex, err)
		}
		r, g, b := c.RGB255()
		fixed = color.RGBA{r, g, b, 255}
	case strengths != nil:
		useRamp = true
	default:
		fixed = color.RGBA{255, 0, 0, 255}
	}

	var minS, maxS float64
	if useRamp {
		minS, maxS = strengths[0], strengths[0]
		for _, s := range strengths {
			if s < minS {
				minS = s
			}
			if s > maxS {
				maxS = s
			}
		}
	}
	weak, _ := colorful.Hex("#2c7bb6")
	strong, _ := colorful.Hex("#d7191c")

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i, p := range points {
		mc := fixed
		if useRamp {
			t := 1.0
			if maxS > minS {
				t = (strengths[i] - minS) / (maxS - minS)
			}
			r, g, b := weak.BlendHcl(strong, t).Clamped().RGB255()
			mc = color.RGBA{r, g, b, 255}
		}
		drawCross(out, p.X+bounds.Min.X, p.Y+bounds.Min.Y, markerRadius, mc)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		FeatureCount: len(points),
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}, nil
}

// drawCross paints a plus-shaped marker centered at (x, y), clipped to the
// image bounds.
func drawCross(img *image.RGBA, x, y, radius int, c color.RGBA) {
	b := img.Bounds()
	for d := -radius; d <= radius; d++ {
		if px := x + d; px >= b.Min.X && px < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
			img.SetRGBA(px, y, c)
		}
		if py := y + d; py >= b.Min.Y && py < b.Max.Y && x >= b.Min.X && x < b.Max.X {
			img.SetRGBA(x, py, c)
		}
	}
}
