package fill

import (
	"image"
	"strings"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// Alpha band thresholds.
const (
	// OpaqueMin is the lowest alpha classified as opaque.
	OpaqueMin = 250
	// TransparentMax is the highest alpha classified as transparent.
	TransparentMax = 10
)

// Band is one of the three opacity classes of a pixel.
type Band int

const (
	// BandOpaque holds pixels with alpha >= OpaqueMin.
	BandOpaque Band = iota
	// BandTransparent holds pixels with alpha <= TransparentMax.
	BandTransparent
	// BandSemi holds every other pixel.
	BandSemi
)

// bandOrder is the order in which regions are processed.
var bandOrder = [...]Band{BandOpaque, BandTransparent, BandSemi}

func (b Band) String() string {
	switch b {
	case BandOpaque:
		return "opaque"
	case BandTransparent:
		return "transparent"
	case BandSemi:
		return "semi_transparent"
	default:
		return "unknown"
	}
}

// ParseBand maps a band name ("opaque", "transparent", "semi_transparent" or
// "semi") onto its Band.
func ParseBand(s string) (Band, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opaque":
		return BandOpaque, true
	case "transparent":
		return BandTransparent, true
	case "semi_transparent", "semi-transparent", "semi":
		return BandSemi, true
	}
	return BandOpaque, false
}

// ClassifyAlpha returns the band an alpha value belongs to.
func ClassifyAlpha(a uint8) Band {
	switch {
	case a >= OpaqueMin:
		return BandOpaque
	case a <= TransparentMax:
		return BandTransparent
	default:
		return BandSemi
	}
}

// Bands holds the three alpha band masks of a raster. They are pairwise
// disjoint and together cover every pixel.
type Bands struct {
	Opaque      *imaging.Mask
	Transparent *imaging.Mask
	Semi        *imaging.Mask
}

// ClassifyBands splits img's alpha channel into the opaque, transparent and
// semi-transparent masks in a single pass. img must be anchored at the origin.
func ClassifyBands(img *image.NRGBA) Bands {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	bands := Bands{
		Opaque:      imaging.NewMask(w, h),
		Transparent: imaging.NewMask(w, h),
		Semi:        imaging.NewMask(w, h),
	}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			i := y*w + x
			switch ClassifyAlpha(row[x*4+3]) {
			case BandOpaque:
				bands.Opaque.Pix[i] = imaging.MaskOn
			case BandTransparent:
				bands.Transparent.Pix[i] = imaging.MaskOn
			default:
				bands.Semi.Pix[i] = imaging.MaskOn
			}
		}
	}
	return bands
}

// Mask returns the mask of band.
func (b Bands) Mask(band Band) *imaging.Mask {
	switch band {
	case BandTransparent:
		return b.Transparent
	case BandSemi:
		return b.Semi
	default:
		return b.Opaque
	}
}

// BandCounts reports how many pixels fall in each band.
type BandCounts struct {
	Opaque      int `json:"opaque"`
	Transparent int `json:"transparent"`
	Semi        int `json:"semi_transparent"`
}

// Counts returns the pixel count of each band.
func (b Bands) Counts() BandCounts {
	return BandCounts{
		Opaque:      b.Opaque.Count(),
		Transparent: b.Transparent.Count(),
		Semi:        b.Semi.Count(),
	}
}
