package fill

import (
	"image"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// TrimMask returns the mask a trim crops to: pixels with non-zero alpha for
// TrimAlpha, or pixels matching color for TrimColor. An invalid color yields
// an empty mask and an error describing it.
func TrimMask(img *image.NRGBA, mode TrimMode, color string, tolerance int) (*imaging.Mask, error) {
	if mode == TrimColor {
		return MatchHex(img, color, tolerance)
	}
	return imaging.MaskFromAlpha(img, func(a uint8) bool { return a > 0 }), nil
}

// Trim crops img to the bounding box of mask. When mask is empty nothing is
// cropped and img is returned as is with trimmed false.
func Trim(img *image.NRGBA, mask *imaging.Mask) (out *image.NRGBA, trimmed bool, err error) {
	if err := checkSize(img, nil, mask); err != nil {
		return nil, false, err
	}
	box, ok := mask.BoundingBox()
	if !ok {
		return img, false, nil
	}
	if box == img.Bounds() {
		return img, false, nil
	}
	out, err = imaging.Crop(img, box)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
