package imaging

import (
	"image"
)

// Mask values. A mask pixel is either excluded or included; nothing in between.
const (
	MaskOff uint8 = 0
	MaskOn  uint8 = 255
)

// Mask is a single-channel selector with the same dimensions as the raster it
// was derived from. Every value is MaskOff or MaskOn.
//
// A Mask owns its Pix slice. Masks are produced fresh by every masking
// operation and never alias a raster's channel storage.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an all-excluded mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FullMask returns an all-included mask of the given size.
func FullMask(width, height int) *Mask {
	m := NewMask(width, height)
	for i := range m.Pix {
		m.Pix[i] = MaskOn
	}
	return m
}

// MaskFromAlpha includes every pixel whose alpha satisfies keep.
// The raster must have its origin at (0,0).
func MaskFromAlpha(img *image.NRGBA, keep func(a uint8) bool) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.Width*4]
		for x := 0; x < m.Width; x++ {
			if keep(row[x*4+3]) {
				m.Pix[y*m.Width+x] = MaskOn
			}
		}
	}
	return m
}

// MaskFromGray thresholds a grayscale image: values strictly greater than
// threshold become included. The gray image is read relative to its own bounds.
func MaskFromGray(g *image.Gray, threshold uint8) *Mask {
	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if g.GrayAt(b.Min.X+x, b.Min.Y+y).Y > threshold {
				m.Pix[y*m.Width+x] = MaskOn
			}
		}
	}
	return m
}

// Bounds returns the mask rectangle anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At reports whether (x, y) is included. Out-of-range coordinates are excluded.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] == MaskOn
}

// Set includes or excludes (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = MaskOn
	} else {
		m.Pix[y*m.Width+x] = MaskOff
	}
}

// Count returns the number of included pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v == MaskOn {
			n++
		}
	}
	return n
}

// Empty reports whether no pixel is included.
func (m *Mask) Empty() bool {
	for _, v := range m.Pix {
		if v == MaskOn {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// SameSize reports whether both masks have identical dimensions.
func (m *Mask) SameSize(o *Mask) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Intersect returns m ∩ o. Masks of different sizes intersect over the
// overlapping area only; the result has m's dimensions.
func (m *Mask) Intersect(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a && b })
}

// Subtract returns m ∩ ¬o.
func (m *Mask) Subtract(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a && !b })
}

// Union returns m ∪ o.
func (m *Mask) Union(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a || b })
}

// Invert returns ¬m.
func (m *Mask) Invert() *Mask {
	out := NewMask(m.Width, m.Height)
	for i, v := range m.Pix {
		if v != MaskOn {
			out.Pix[i] = MaskOn
		}
	}
	return out
}

func (m *Mask) combine(o *Mask, op func(a, b bool) bool) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if op(m.Pix[i] == MaskOn, o.At(x, y)) {
				out.Pix[i] = MaskOn
			}
		}
	}
	return out
}

// BoundingBox returns the smallest rectangle containing every included pixel.
// ok is false when the mask is empty.
func (m *Mask) BoundingBox() (box image.Rectangle, ok bool) {
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if v != MaskOn {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Gray renders the mask as a grayscale image (0 = excluded, 255 = included).
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(m.Bounds())
	copy(g.Pix, m.Pix)
	return g
}

// AlphaImage renders the mask as an *image.Alpha for use as a draw mask.
func (m *Mask) AlphaImage() *image.Alpha {
	a := image.NewAlpha(m.Bounds())
	copy(a.Pix, m.Pix)
	return a
}
