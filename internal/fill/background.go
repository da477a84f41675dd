package fill

import (
	"image"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// CutoutMask selects the pixels of the original image where the background is
// kept in cutout mode: its opaque band, its transparent band, or the pixels
// matching color. An invalid color selects nothing and is reported through err.
func CutoutMask(orig *image.NRGBA, bands Bands, target CutoutTarget, color string, tolerance int) (*imaging.Mask, error) {
	switch target {
	case CutoutTransparent:
		return bands.Transparent.Clone(), nil
	case CutoutColor:
		return MatchHex(orig, color, tolerance)
	default:
		return bands.Opaque.Clone(), nil
	}
}

// ApplyBackground places subject over background and returns the result.
//
// In overlay mode the subject's own alpha decides where the background shows
// through. In cutout mode the background is first made fully transparent
// wherever cutout is not set, so it only remains visible inside the selected
// area. cutout is ignored in overlay mode.
func ApplyBackground(subject, background *image.NRGBA, mode BackgroundMode, cutout *imaging.Mask) (*image.NRGBA, error) {
	if mode == BackgroundCutout && cutout != nil {
		holed, err := RewriteAlpha(background, cutout.Invert(), 0)
		if err != nil {
			return nil, err
		}
		background = holed
	}
	return over(background, subject)
}
