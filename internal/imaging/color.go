package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha (non-premultiplied)
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// ParseHexColor parses a color written as "#RGB", "#RRGGBB" or "#RRGGBBAA".
// The leading '#' is optional and surrounding whitespace is ignored. Alpha
// defaults to 255 when not given.
//
// An error is returned for anything else; callers in the fill engine treat
// that as "no color" rather than a failure.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	for _, ch := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
	}

	alpha := uint8(255)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length in %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatHex renders a color as "#RRGGBB", dropping alpha.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// The color is read without alpha premultiplication, so a fully transparent
// pixel still reports the RGB it carries. Coordinates are 0-based with the
// origin at the top-left corner of the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
	return newColorResult(c), nil
}

func newColorResult(c color.NRGBA) *ColorResult {
	return &ColorResult{
		Hex:  FormatHex(c),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  toHSL(c),
	}
}

// toHSL converts to HSL using go-colorful, rounding to whole units.
func toHSL(c color.NRGBA) HSLColor {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	if s == 0 {
		h = 0
	}
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

// ColorFrequency represents a color and its share of the analysed pixels.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB"
	Percentage float64  `json:"percentage"` // Share of the analysed pixels (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components
}

// DominantColorsResult contains the most prominent colors, most prominent first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
	Pixels int              `json:"pixels"` // Number of pixels analysed
}

// DominantColors extracts up to count dominant colors from the pixels selected
// by mask. A nil mask analyses the whole image.
//
// Selected pixels are repacked into an opaque strip before clustering so that
// transparency does not skew the palette: a fully transparent pixel still
// contributes the RGB it carries.
func DominantColors(img *image.NRGBA, mask *Mask, count int) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	strip := selectedPixels(img, mask)
	if strip == nil {
		return &DominantColorsResult{Colors: []ColorFrequency{}}, nil
	}

	weighted := dominantcolor.FindWeight(strip, count)
	colors := make([]ColorFrequency, 0, len(weighted))
	for _, c := range weighted {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", c.RGBA.R, c.RGBA.G, c.RGBA.B),
			Percentage: c.Weight * 100,
			RGB:        RGBColor{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
		})
	}
	pixels := img.Bounds().Dx() * img.Bounds().Dy()
	if mask != nil {
		pixels = mask.Count()
	}
	return &DominantColorsResult{Colors: colors, Pixels: pixels}, nil
}

// dominantClusters is the number of clusters DominantColor chooses from.
const dominantClusters = 4

// DominantColor returns the single most prominent color among the selected
// pixels. ok is false when the selection is empty.
func DominantColor(img *image.NRGBA, mask *Mask) (c color.NRGBA, ok bool) {
	strip := selectedPixels(img, mask)
	if strip == nil {
		return color.NRGBA{}, false
	}
	// A single cluster would average everything; pick the heaviest of a few.
	weighted := dominantcolor.FindWeight(strip, dominantClusters)
	if len(weighted) == 0 {
		return color.NRGBA{}, false
	}
	best := weighted[0]
	for _, w := range weighted[1:] {
		if w.Weight > best.Weight {
			best = w
		}
	}
	d := best.RGBA
	return color.NRGBA{R: d.R, G: d.G, B: d.B, A: 255}, true
}

// selectedPixels copies the selected pixels into an opaque image roughly square
// in shape. It returns nil when nothing is selected.
func selectedPixels(img *image.NRGBA, mask *Mask) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := w * h
	if mask != nil {
		n = mask.Count()
	}
	if n == 0 {
		return nil
	}

	side := 1
	for side*side < n {
		side++
	}
	rows := (n + side - 1) / side
	out := image.NewNRGBA(image.Rect(0, 0, side, rows))

	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask != nil && !mask.At(x, y) {
				continue
			}
			src := img.Pix[y*img.Stride+x*4:]
			dst := out.Pix[(i/side)*out.Stride+(i%side)*4:]
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
			i++
		}
	}
	// Pad the tail of the last row with the last selected pixel.
	for ; i < side*rows; i++ {
		last := out.Pix[((n-1)/side)*out.Stride+((n-1)%side)*4:]
		dst := out.Pix[(i/side)*out.Stride+(i%side)*4:]
		copy(dst[:4], last[:4])
	}
	return out
}
