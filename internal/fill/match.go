package fill

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// DefaultTolerance is the color tolerance used when none is configured.
const DefaultTolerance = 30

// toleranceScale converts a tolerance into the largest accepted sum of
// per-channel differences.
const toleranceScale = 3

// MatchColor returns the pixels of img whose RGB lies within tolerance of
// target. The distance is |Δr|+|Δg|+|Δb| and a pixel matches when it is at
// most tolerance*3. Alpha is ignored. Negative tolerances count as 0.
func MatchColor(img *image.NRGBA, target color.NRGBA, tolerance int) *imaging.Mask {
	if tolerance < 0 {
		tolerance = 0
	}
	limit := tolerance * toleranceScale

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := imaging.NewMask(w, h)
	tr, tg, tb := int(target.R), int(target.G), int(target.B)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+3]
			d := absInt(int(p[0])-tr) + absInt(int(p[1])-tg) + absInt(int(p[2])-tb)
			if d <= limit {
				m.Pix[y*w+x] = imaging.MaskOn
			}
		}
	}
	return m
}

// MatchHex is MatchColor for a hex color string. An unparseable color matches
// nothing: the returned mask is empty and err describes the bad input so the
// caller can report it. The mask is never nil.
func MatchHex(img *image.NRGBA, hex string, tolerance int) (*imaging.Mask, error) {
	target, err := imaging.ParseHexColor(hex)
	if err != nil {
		b := img.Bounds()
		return imaging.NewMask(b.Dx(), b.Dy()), err
	}
	return MatchColor(img, target, tolerance), nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
