package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Clone returns an owned non-premultiplied copy of img anchored at the origin.
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Resize scales img to exactly width x height using Lanczos resampling.
func Resize(img image.Image, width, height int) *image.NRGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// ScaleRotate scales img by scalePct percent and then rotates it clockwise by
// rotationDeg degrees. The rotated canvas is expanded so no corner is clipped;
// uncovered areas are transparent. A non-positive scalePct means 100.
func ScaleRotate(img image.Image, scalePct, rotationDeg float64) *image.NRGBA {
	if scalePct <= 0 {
		scalePct = 100
	}

	b := img.Bounds()
	var out *image.NRGBA
	if scalePct == 100 {
		out = imaging.Clone(img)
	} else {
		w := int(math.Round(float64(b.Dx()) * scalePct / 100))
		h := int(math.Round(float64(b.Dy()) * scalePct / 100))
		out = Resize(img, w, h)
	}

	rot := math.Mod(rotationDeg, 360)
	if rot == 0 {
		return out
	}
	// imaging rotates counter-clockwise.
	return imaging.Rotate(out, -rot, color.Transparent)
}

// Tile repeats tile across a width x height canvas. The tile's top-left corner
// is placed at (offX, offY) and the pattern wraps in both directions so the
// whole canvas is covered.
func Tile(tile *image.NRGBA, width, height, offX, offY int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	tb := tile.Bounds()
	tw, th := tb.Dx(), tb.Dy()
	if tw == 0 || th == 0 {
		return out
	}

	for y := 0; y < height; y++ {
		sy := wrap(y-offY, th)
		srcRow := tile.Pix[sy*tile.Stride:]
		dstRow := out.Pix[y*out.Stride:]
		for x := 0; x < width; x++ {
			sx := wrap(x-offX, tw)
			copy(dstRow[x*4:x*4+4], srcRow[sx*4:sx*4+4])
		}
	}
	return out
}

// TileRotated covers a width x height canvas with tile repeated from
// (offX, offY) and turned clockwise by rotationDeg. Quarter turns rotate the
// tile itself. Other angles tile a square that covers the canvas at any
// angle, rotate it about its center and crop the canvas out of the middle, so
// the pattern has no uncovered corners.
func TileRotated(tile *image.NRGBA, width, height, offX, offY int, rotationDeg float64) *image.NRGBA {
	rot := math.Mod(rotationDeg, 360)
	if rot < 0 {
		rot += 360
	}
	if math.Mod(rot, 90) == 0 {
		return Tile(imaging.Rotate(tile, -rot, color.Transparent), width, height, offX, offY)
	}

	// Margin keeps bilinear samples near the crop corners inside the square.
	side := int(math.Ceil(math.Hypot(float64(width), float64(height)))) + 4
	padX, padY := (side-width)/2, (side-height)/2
	square := Tile(tile, side, side, offX+padX, offY+padY)
	return imaging.CropCenter(imaging.Rotate(square, -rot, color.Transparent), width, height)
}

// wrap returns v modulo n in the range [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Solid returns a width x height canvas filled with c.
func Solid(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// CropCenter cuts a width x height rectangle out of the center of img.
func CropCenter(img image.Image, width, height int) *image.NRGBA {
	return imaging.CropCenter(img, width, height)
}
