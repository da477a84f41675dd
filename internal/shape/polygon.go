package shape

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/vector"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

type point struct {
	x, y float64
}

// regular returns the n vertices of a regular polygon of radius r around the
// canvas center, the first vertex at angle start.
func regular(g geometry, n int, r, start float64) []point {
	pts := make([]point, n)
	for k := 0; k < n; k++ {
		a := start + float64(k)*2*math.Pi/float64(n)
		pts[k] = point{g.cx + r*math.Cos(a), g.cy + r*math.Sin(a)}
	}
	return pts
}

// star returns 2n vertices alternating between the base radius and
// base radius * inner, the first tip pointing up.
func star(g geometry, n int, inner float64) []point {
	pts := make([]point, 2*n)
	for k := 0; k < 2*n; k++ {
		r := g.r
		if k%2 == 1 {
			r *= inner
		}
		a := -math.Pi/2 + float64(k)*math.Pi/float64(n)
		pts[k] = point{g.cx + r*math.Cos(a), g.cy + r*math.Sin(a)}
	}
	return pts
}

// polygon fills the closed polygon through pts. Coverage from the
// antialiasing rasterizer is thresholded at one half.
func polygon(g geometry, pts []point) *imaging.Mask {
	if len(pts) < 3 {
		return imaging.NewMask(g.w, g.h)
	}

	z := vector.NewRasterizer(g.w, g.h)
	z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()

	cov := image.NewAlpha(image.Rect(0, 0, g.w, g.h))
	z.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})

	m := imaging.NewMask(g.w, g.h)
	for i, a := range cov.Pix {
		if a >= 128 {
			m.Pix[i] = imaging.MaskOn
		}
	}
	return m
}

// smooth blurs m and re-thresholds it, rounding off sharp corners. Values
// strictly above threshold stay included.
func smooth(m *imaging.Mask, radius float64, threshold uint8) *imaging.Mask {
	if radius < 1 {
		return m
	}
	blurred := blur.Gaussian(m.Gray(), radius)

	out := imaging.NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		row := blurred.Pix[y*blurred.Stride:]
		for x := 0; x < m.Width; x++ {
			if row[x*4] > threshold {
				out.Pix[y*m.Width+x] = imaging.MaskOn
			}
		}
	}
	return out
}
