package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DefaultTint is the highlight used by MaskPreview when none is given.
var DefaultTint = color.NRGBA{255, 0, 255, 160}

// PreviewOptions controls MaskPreview.
type PreviewOptions struct {
	// Tint colors the selected pixels. Its alpha sets the highlight strength.
	Tint color.NRGBA
	// GridSpacing draws a coordinate grid every GridSpacing pixels; 0 disables it.
	GridSpacing int
	// GridColor is the color of the grid lines.
	GridColor color.NRGBA
}

// MaskPreview renders img on a checkerboard with the pixels selected by mask
// highlighted, so a region can be inspected before it is filled. The result is
// opaque and has img's size.
func MaskPreview(img *image.NRGBA, mask *Mask, opts PreviewOptions) *image.NRGBA {
	if opts.Tint == (color.NRGBA{}) {
		opts.Tint = DefaultTint
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	out := imaging.Overlay(checkerboard(width, height), img, image.Pt(0, 0), 1.0)
	if mask != nil && mask.Width == width && mask.Height == height {
		tint := imaging.New(width, height, opts.Tint)
		for i, v := range mask.Pix {
			if v == MaskOff {
				tint.Pix[i*4+3] = 0
			}
		}
		out = imaging.Overlay(out, tint, image.Pt(0, 0), 1.0)
	}

	if opts.GridSpacing > 0 {
		gc := opts.GridColor
		if gc == (color.NRGBA{}) {
			gc = color.NRGBA{255, 0, 0, 255}
		}
		for x := opts.GridSpacing; x < width; x += opts.GridSpacing {
			for y := 0; y < height; y++ {
				out.SetNRGBA(x, y, gc)
			}
		}
		for y := opts.GridSpacing; y < height; y += opts.GridSpacing {
			for x := 0; x < width; x++ {
				out.SetNRGBA(x, y, gc)
			}
		}
	}
	return out
}

// checkerboard returns the usual light/dark pattern shown behind transparency.
func checkerboard(width, height int) *image.NRGBA {
	const cell = 8
	light := color.NRGBA{204, 204, 204, 255}
	dark := color.NRGBA{153, 153, 153, 255}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
