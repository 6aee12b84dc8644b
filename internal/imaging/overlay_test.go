package imaging

import (
	"image/color"
	"testing"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
)

func TestMarkFeatures(t *testing.T) {
	img := inMemoryImage(60, 40, color.RGBA{0, 0, 0, 255})
	points := []extract.Point{{X: 10, Y: 10}, {X: 30, Y: 20}}

	result, err := MarkFeatures(img, points, nil, 3, "#00FF00")
	if err != nil {
		t.Fatalf("MarkFeatures failed: %v", err)
	}

	if result.Width != 60 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 60x40", result.Width, result.Height)
	}
	if result.FeatureCount != 2 {
		t.Errorf("FeatureCount: got %d, want 2", result.FeatureCount)
	}

	decoded := decodePNGResult(t, result.ImageBase64)
	r, g, b, _ := decoded.At(10, 10).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("marker center color: got #%02X%02X%02X, want #00FF00", r>>8, g>>8, b>>8)
	}
	// Away from any marker the source pixel shows through.
	r, g, b, _ = decoded.At(50, 35).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("background color: got #%02X%02X%02X, want #000000", r>>8, g>>8, b>>8)
	}
}

func TestMarkFeatures_StrengthRamp(t *testing.T) {
	img := inMemoryImage(60, 40, color.RGBA{0, 0, 0, 255})
	points := []extract.Point{{X: 10, Y: 10}, {X: 40, Y: 10}}
	strengths := []float64{1, 100}

	result, err := MarkFeatures(img, points, strengths, 2, "")
	if err != nil {
		t.Fatalf("MarkFeatures failed: %v", err)
	}

	decoded := decodePNGResult(t, result.ImageBase64)
	wr, _, wb, _ := decoded.At(10, 10).RGBA()
	sr, _, sb, _ := decoded.At(40, 10).RGBA()
	// Weak features lean blue, strong features lean red.
	if wb <= wr {
		t.Errorf("weak marker not blue-leaning: r=%d b=%d", wr>>8, wb>>8)
	}
	if sr <= sb {
		t.Errorf("strong marker not red-leaning: r=%d b=%d", sr>>8, sb>>8)
	}
}

func TestMarkFeatures_StrengthCountMismatch(t *testing.T) {
	img := inMemoryImage(20, 20, color.RGBA{0, 0, 0, 255})
	_, err := MarkFeatures(img, []extract.Point{{X: 5, Y: 5}}, []float64{1, 2}, 2, "")
	if err == nil {
		t.Error("MarkFeatures should fail on strength/point count mismatch")
	}
}

func TestMarkFeatures_InvalidColor(t *testing.T) {
	img := inMemoryImage(20, 20, color.RGBA{0, 0, 0, 255})
	_, err := MarkFeatures(img, []extract.Point{{X: 5, Y: 5}}, nil, 2, "chartreuse")
	if err == nil {
		t.Error("MarkFeatures should fail on malformed hex color")
	}
}

func TestMarkFeatures_MarkerClippedAtEdge(t *testing.T) {
	img := inMemoryImage(20, 20, color.RGBA{0, 0, 0, 255})
	// Marker arms extend past the image corner; drawing must not panic.
	result, err := MarkFeatures(img, []extract.Point{{X: 0, Y: 0}}, nil, 5, "")
	if err != nil {
		t.Fatalf("MarkFeatures failed: %v", err)
	}
	if result.FeatureCount != 1 {
		t.Errorf("FeatureCount: got %d, want 1", result.FeatureCount)
	}
}
