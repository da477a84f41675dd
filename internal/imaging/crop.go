package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ImageResult contains an encoded image returned to MCP clients.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG result.
func EncodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts rect from img. The rectangle is clipped to the image bounds and
// the result is anchored at the origin.
func Crop(img *image.NRGBA, rect image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()
	r := rect.Intersect(bounds)
	if r.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, bounds)
	}
	return imaging.Crop(img, r), nil
}

// Flatten composites img onto an opaque backdrop. Used before writing formats
// without alpha support.
func Flatten(img image.Image, backdrop color.Color) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), backdrop)
	return Overlay(bg, img)
}

// Overlay draws src over dst at the origin with straight alpha and returns the
// result. Pixels transparent in both images are undefined.
func Overlay(dst, src image.Image) *image.NRGBA {
	return imaging.Overlay(dst, src, image.Pt(0, 0), 1.0)
}

// Save writes img to path, picking the encoder from the extension. Formats
// without alpha support (JPEG, BMP) are flattened onto white first.
func Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("failed to pick output format: %w", err)
	}

	out := img
	switch format {
	case imaging.JPEG, imaging.BMP:
		out = Flatten(img, color.White)
	}

	if err := imaging.Save(out, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
