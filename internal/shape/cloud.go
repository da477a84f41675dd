package shape

import (
	"math"
	"math/rand"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

const (
	cloudPuffs     = 15
	cloudThreshold = 100
)

// cloud scatters cloudPuffs random circles, unions them and smooths the
// outline with a blur and re-threshold. A bounded cloud keeps every puff
// inside the base circle; an unbounded one scatters puffs around the center
// with radii proportional to the short side of the canvas.
func cloud(g geometry, bounded bool, rng *rand.Rand) *imaging.Mask {
	m := imaging.NewMask(g.w, g.h)
	short := math.Min(float64(g.w), float64(g.h))

	for i := 0; i < cloudPuffs; i++ {
		var px, py, pr float64
		if bounded {
			pr = g.r * (0.25 + 0.25*rng.Float64())
			d := (g.r - pr) * math.Sqrt(rng.Float64())
			a := rng.Float64() * 2 * math.Pi
			px = g.cx + d*math.Cos(a)
			py = g.cy + d*math.Sin(a)
		} else {
			pr = short * (0.1 + 0.15*rng.Float64())
			px = g.cx + (rng.Float64()*2-1)*float64(g.w)*0.3
			py = g.cy + (rng.Float64()*2-1)*float64(g.h)*0.3
		}
		disc(m, px, py, pr)
	}

	m = smooth(m, short/50, cloudThreshold)
	if bounded {
		m = m.Intersect(ellipse(g, g.r, g.r))
	}
	if m.Empty() {
		// Canvases a few pixels wide can blur every puff away.
		return ellipse(g, g.r, g.r)
	}
	return m
}

// disc includes every pixel whose center lies within r of (cx, cy).
func disc(m *imaging.Mask, cx, cy, r float64) {
	minX := int(math.Max(0, math.Floor(cx-r)))
	maxX := int(math.Min(float64(m.Width-1), math.Ceil(cx+r)))
	minY := int(math.Max(0, math.Floor(cy-r)))
	maxY := int(math.Min(float64(m.Height-1), math.Ceil(cy+r)))
	r2 := r * r
	for y := minY; y <= maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				m.Pix[y*m.Width+x] = imaging.MaskOn
			}
		}
	}
}
