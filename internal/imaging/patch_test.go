package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// inMemoryImage builds a solid-color image without touching disk.
func inMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// decodePNGResult decodes a base64 PNG payload and returns the image.
func decodePNGResult(t *testing.T, b64 string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestFeaturePatch(t *testing.T) {
	img := inMemoryImage(100, 100, color.RGBA{40, 40, 40, 255})

	result, err := FeaturePatch(img, 50, 50, 5, 1.0)
	if err != nil {
		t.Fatalf("FeaturePatch failed: %v", err)
	}

	if result.Width != 11 || result.Height != 11 {
		t.Errorf("dimensions: got %dx%d, want 11x11", result.Width, result.Height)
	}
	if result.Clipped {
		t.Error("interior patch reported as clipped")
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded := decodePNGResult(t, result.ImageBase64)
	if decoded.Bounds().Dx() != 11 || decoded.Bounds().Dy() != 11 {
		t.Errorf("decoded dimensions: got %dx%d, want 11x11",
			decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestFeaturePatch_ClipsAtEdge(t *testing.T) {
	img := inMemoryImage(100, 100, color.RGBA{40, 40, 40, 255})

	// Feature at the corner: the radius-5 neighborhood extends off-image on
	// two sides.
	result, err := FeaturePatch(img, 2, 3, 5, 1.0)
	if err != nil {
		t.Fatalf("FeaturePatch failed: %v", err)
	}

	if !result.Clipped {
		t.Error("edge patch not reported as clipped")
	}
	if result.Width != 8 || result.Height != 9 {
		t.Errorf("dimensions: got %dx%d, want 8x9", result.Width, result.Height)
	}
}

func TestFeaturePatch_Scaling(t *testing.T) {
	img := inMemoryImage(100, 100, color.RGBA{40, 40, 40, 255})

	result, err := FeaturePatch(img, 50, 50, 5, 4.0)
	if err != nil {
		t.Fatalf("FeaturePatch failed: %v", err)
	}
	if result.Width != 44 || result.Height != 44 {
		t.Errorf("dimensions: got %dx%d, want 44x44", result.Width, result.Height)
	}
}

func TestFeaturePatch_InvalidInputs(t *testing.T) {
	img := inMemoryImage(20, 20, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name   string
		x, y   int
		radius int
	}{
		{"x outside", 20, 10, 3},
		{"y outside", 10, -1, 3},
		{"negative radius", 10, 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FeaturePatch(img, tt.x, tt.y, tt.radius, 1.0); err == nil {
				t.Error("FeaturePatch should fail")
			}
		})
	}
}
