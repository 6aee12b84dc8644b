package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PatchResult contains the pixel neighborhood of a feature, encoded as
// base64 PNG.
type PatchResult struct {
	// CenterX, CenterY echo the requested feature coordinate.
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	// Width and Height are the output patch dimensions after scaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Clipped reports whether the requested neighborhood extended past the
	// image edge and was cut down to the available extent.
	Clipped bool `json:"clipped"`

	// ImageBase64 is the patch encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// FeaturePatch extracts the square neighborhood of radius pixels around
// (x, y), the footprint a descriptor stage would consume, and returns it
// as a PNG.
//
// The patch is clipped at the image edges rather than failing, mirroring
// how a border-detecting extractor reports features with partially
// off-image footprints; the Clipped flag records that this happened. A
// scale factor above 0 and other than 1 resizes the patch (nearest-neighbor,
// so individual response pixels stay inspectable when magnifying).
func FeaturePatch(img image.Image, x, y, radius int, scale float64) (*PatchResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || y < bounds.Min.Y || x >= bounds.Max.X || y >= bounds.Max.Y {
		return nil, fmt.Errorf("feature (%d,%d) outside image bounds %v", x, y, bounds)
	}
	if radius < 0 {
		return nil, fmt.Errorf("negative patch radius %d", radius)
	}

	want := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1)
	rect := want.Intersect(bounds)
	patch := imaging.Crop(img, rect)

	if scale > 0 && scale != 1.0 {
		w := int(float64(patch.Bounds().Dx()) * scale)
		h := int(float64(patch.Bounds().Dy()) * scale)
		patch = imaging.Resize(patch, w, h, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, patch); err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}

	return &PatchResult{
		CenterX:     x,
		CenterY:     y,
		Width:       patch.Bounds().Dx(),
		Height:      patch.Bounds().Dy(),
		Clipped:     rect != want,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
