package shape

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// customAlphaThreshold is the lowest source alpha that counts as inside a
// custom shape.
const customAlphaThreshold = 128

// FromAlpha builds a custom crop shape from src: the image is resized to
// width x height and its alpha channel becomes the mask.
func FromAlpha(src image.Image, width, height int) (*imaging.Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("custom shape image is empty")
	}

	resized := imaging.Resize(src, width, height)
	return imaging.MaskFromAlpha(resized, func(a uint8) bool {
		return a >= customAlphaThreshold
	}), nil
}
