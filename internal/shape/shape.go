package shape

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// ErrNeedsImage is returned by Generate for Custom: custom shapes come from a
// user image and are built with FromAlpha.
var ErrNeedsImage = errors.New("custom shape requires a source image")

// Star inner radius factors, relative to the outer radius.
const (
	star4SharpInner   = 0.4
	star4RoundedInner = 0.6
	star5SharpInner   = 0.4
	star5RoundedInner = 0.55
)

// ovalMinor is the minor/major axis ratio of the oval variants.
const ovalMinor = 0.6

// geometry holds the canvas center and base radius shared by every shape.
type geometry struct {
	w, h   int
	cx, cy float64
	r      float64
}

func newGeometry(w, h int) geometry {
	return geometry{
		w:  w,
		h:  h,
		cx: float64(w) / 2,
		cy: float64(h) / 2,
		r:  math.Min(float64(w), float64(h)) / 2,
	}
}

// Generate rasterizes kind into a width x height mask with the shape centered
// on the canvas and sized by the base radius min(width, height)/2.
//
// rng drives the cloud shapes; nil uses a time-seeded source. None yields a
// full mask (nothing is cropped). Custom returns ErrNeedsImage.
func Generate(kind Kind, width, height int, rng *rand.Rand) (*imaging.Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	g := newGeometry(width, height)

	switch kind {
	case None:
		return imaging.FullMask(width, height), nil
	case Circle:
		return ellipse(g, g.r, g.r), nil
	case Ellipse:
		return ellipse(g, g.cx, g.cy), nil
	case OvalHorizontal:
		return ellipse(g, g.r, g.r*ovalMinor), nil
	case OvalVertical:
		return ellipse(g, g.r*ovalMinor, g.r), nil
	case Square:
		return polygon(g, regular(g, 4, g.r, -math.Pi/4)), nil
	case Triangle:
		return polygon(g, regular(g, 3, g.r, -math.Pi/2)), nil
	case Pentagon:
		return polygon(g, regular(g, 5, g.r, -math.Pi/2)), nil
	case Hexagon:
		return polygon(g, regular(g, 6, g.r, -math.Pi/2)), nil
	case Star4Sharp:
		return polygon(g, star(g, 4, star4SharpInner)), nil
	case Star4Rounded:
		return smooth(polygon(g, star(g, 4, star4RoundedInner)), g.r/8, 127), nil
	case Star5Sharp:
		return polygon(g, star(g, 5, star5SharpInner)), nil
	case Star5Rounded:
		return smooth(polygon(g, star(g, 5, star5RoundedInner)), g.r/8, 127), nil
	case CloudBounded:
		return cloud(g, true, seeded(rng)), nil
	case Cloud:
		return cloud(g, false, seeded(rng)), nil
	case Custom:
		return nil, ErrNeedsImage
	default:
		return nil, fmt.Errorf("unknown shape kind %d", int(kind))
	}
}

func seeded(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ellipse includes every pixel whose center lies inside the axis-aligned
// ellipse with radii rx, ry around the canvas center.
func ellipse(g geometry, rx, ry float64) *imaging.Mask {
	m := imaging.NewMask(g.w, g.h)
	if rx <= 0 || ry <= 0 {
		return m
	}
	for y := 0; y < g.h; y++ {
		dy := (float64(y) + 0.5 - g.cy) / ry
		for x := 0; x < g.w; x++ {
			dx := (float64(x) + 0.5 - g.cx) / rx
			if dx*dx+dy*dy <= 1 {
				m.Pix[y*g.w+x] = imaging.MaskOn
			}
		}
	}
	return m
}
