package fill

import (
	"image"
	"math"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// Composite returns a copy of base whose RGB is replaced by layer's wherever
// mask is set. Alpha and unmasked pixels are left as they are. base, layer and
// mask must share dimensions.
func Composite(base, layer *image.NRGBA, mask *imaging.Mask) (*image.NRGBA, error) {
	if err := checkSize(base, layer, mask); err != nil {
		return nil, err
	}
	out := imaging.Clone(base)
	w, h := mask.Width, mask.Height
	for y := 0; y < h; y++ {
		dst := out.Pix[y*out.Stride:]
		src := layer.Pix[y*layer.Stride:]
		for x := 0; x < w; x++ {
			if mask.Pix[y*w+x] == imaging.MaskOff {
				continue
			}
			copy(dst[x*4:x*4+3], src[x*4:x*4+3])
		}
	}
	return out, nil
}

// TargetAlpha converts an opacity percentage to an 8-bit alpha. Values
// outside 0..100 are clamped.
func TargetAlpha(pct int) uint8 {
	pct = clampInt(pct, 0, 100)
	return uint8(math.Round(float64(pct) / 100 * 255))
}

// RewriteAlpha returns a copy of base with alpha set to a wherever mask is
// set.
func RewriteAlpha(base *image.NRGBA, mask *imaging.Mask, a uint8) (*image.NRGBA, error) {
	if err := checkSize(base, nil, mask); err != nil {
		return nil, err
	}
	out := imaging.Clone(base)
	w := mask.Width
	for i, v := range mask.Pix {
		if v == imaging.MaskOn {
			out.Pix[(i/w)*out.Stride+(i%w)*4+3] = a
		}
	}
	return out, nil
}

// ApplyShape returns a copy of img made fully transparent outside mask.
func ApplyShape(img *image.NRGBA, mask *imaging.Mask) (*image.NRGBA, error) {
	return RewriteAlpha(img, mask.Invert(), 0)
}

// over composites src onto dst with straight (non-premultiplied) alpha and
// returns the result. Pixels where both are fully transparent come out as
// transparent black.
func over(dst, src *image.NRGBA) (*image.NRGBA, error) {
	if err := checkSize(dst, src, nil); err != nil {
		return nil, err
	}
	out := imaging.Overlay(dst, src)

	// Overlay normalizes by the combined alpha; clear pixels where it is zero.
	b := out.Bounds()
	for y := 0; y < b.Dy(); y++ {
		d := dst.Pix[y*dst.Stride:]
		s := src.Pix[y*src.Stride:]
		o := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			i := x * 4
			if d[i+3] == 0 && s[i+3] == 0 {
				o[i], o[i+1], o[i+2], o[i+3] = 0, 0, 0, 0
			}
		}
	}
	return out, nil
}

// checkSize verifies that img, layer and mask agree on dimensions. layer and
// mask may be nil.
func checkSize(img, layer *image.NRGBA, mask *imaging.Mask) error {
	b := img.Bounds()
	if layer != nil && layer.Bounds().Size() != b.Size() {
		return sizeError(b, layer.Bounds())
	}
	if mask != nil && (mask.Width != b.Dx() || mask.Height != b.Dy()) {
		return sizeError(b, mask.Bounds())
	}
	return nil
}
