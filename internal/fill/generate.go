package fill

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// rampMargin pads the rotated gradient square so resampling at the rim never
// reaches the cropped canvas.
const rampMargin = 2

// SolidLayer returns a width x height layer of a single color.
func SolidLayer(width, height int, c color.NRGBA) *image.NRGBA {
	return imaging.Solid(width, height, c)
}

// ParseGradient resolves the hex stops of g. Mid is optional; the result has
// two or three colors.
func ParseGradient(g GradientSpec) ([]color.NRGBA, error) {
	start, err := imaging.ParseHexColor(g.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid gradient start: %w", err)
	}
	end, err := imaging.ParseHexColor(g.End)
	if err != nil {
		return nil, fmt.Errorf("invalid gradient end: %w", err)
	}
	if g.Mid == "" {
		return []color.NRGBA{start, end}, nil
	}
	mid, err := imaging.ParseHexColor(g.Mid)
	if err != nil {
		return nil, fmt.Errorf("invalid gradient mid: %w", err)
	}
	return []color.NRGBA{start, mid, end}, nil
}

// GradientLayer renders a linear gradient through stops across a width x height
// canvas. angle is in clockwise degrees: 0 runs left to right, 90 top to
// bottom.
//
// Axis-aligned angles are computed directly so the first and last rows or
// columns hit the end stops exactly. Any other angle paints a 0..255 ramp in a
// square covering the canvas diagonal, rotates it and crops the center, so no
// corner is left unfilled.
func GradientLayer(width, height int, stops []color.NRGBA, angle float64) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if len(stops) < 2 || len(stops) > 3 {
		return nil, fmt.Errorf("gradient needs 2 or 3 stops, got %d", len(stops))
	}
	lut := gradientLUT(stops)
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}

	switch angle {
	case 0, 90, 180, 270:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				var t float64
				switch angle {
				case 0:
					t = ratio(x, width)
				case 90:
					t = ratio(y, height)
				case 180:
					t = 1 - ratio(x, width)
				case 270:
					t = 1 - ratio(y, height)
				}
				out.SetNRGBA(x, y, lut[int(math.Round(t*255))])
			}
		}
		return out, nil
	}

	ramp := rotatedRamp(width, height, angle)
	for y := 0; y < height; y++ {
		row := ramp.Pix[y*ramp.Stride:]
		for x := 0; x < width; x++ {
			out.SetNRGBA(x, y, lut[row[x]])
		}
	}
	return out, nil
}

// rotatedRamp returns the width x height center of a horizontal ramp rotated
// clockwise by angle degrees, as one ramp value per pixel.
func rotatedRamp(width, height int, angle float64) *image.Gray {
	side := int(math.Ceil(math.Hypot(float64(width), float64(height)))) + rampMargin
	sq := image.NewGray(image.Rect(0, 0, side, side))
	for x := 0; x < side; x++ {
		v := uint8(math.Round(ratio(x, side) * 255))
		for y := 0; y < side; y++ {
			sq.Pix[y*sq.Stride+x] = v
		}
	}

	rotated := transform.Rotate(sq, angle, &transform.RotationOptions{ResizeBounds: false})
	// CropCenter hands back non-premultiplied pixels.
	center := imaging.CropCenter(rotated, width, height)

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := center.Pix[y*center.Stride:]
		for x := 0; x < width; x++ {
			out.Pix[y*out.Stride+x] = src[x*4]
		}
	}
	return out
}

// gradientLUT maps every ramp value to a color by blending neighbouring stops.
func gradientLUT(stops []color.NRGBA) [256]color.NRGBA {
	var lut [256]color.NRGBA
	segments := len(stops) - 1
	for i := range lut {
		t := float64(i) / 255 * float64(segments)
		seg := int(t)
		if seg >= segments {
			seg = segments - 1
		}
		lut[i] = blend(stops[seg], stops[seg+1], t-float64(seg))
	}
	return lut
}

func blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := math.Round(float64(a.A) + (float64(b.A)-float64(a.A))*t)
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha)}
}

// ratio returns i/(n-1), or 0 for a single-pixel axis.
func ratio(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// TextureLayer loads the texture at spec.Path, scales and rotates it and tiles
// it across a width x height canvas starting at the spec's offset.
func TextureLayer(cache *imaging.ImageCache, spec TextureSpec, width, height int) (*image.NRGBA, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("texture path is empty")
	}
	src, err := cache.Load(spec.Path)
	if err != nil {
		return nil, err
	}
	tile := imaging.ScaleRotate(src, spec.ScalePct, 0)
	if tile.Bounds().Empty() {
		return nil, fmt.Errorf("texture %s is empty after scaling", spec.Path)
	}
	return imaging.TileRotated(tile, width, height, spec.OffsetX, spec.OffsetY, spec.Rotation), nil
}
