package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestResize(t *testing.T) {
	img := createInMemoryImage(10, 20, color.NRGBA{0, 128, 0, 255})

	out := Resize(img, 5, 0)
	if out.Bounds() != image.Rect(0, 0, 5, 1) {
		t.Errorf("bounds: got %v, want 5x1 (minimum size 1)", out.Bounds())
	}
}

func TestScaleRotate(t *testing.T) {
	img := createInMemoryImage(40, 20, color.NRGBA{10, 20, 30, 255})

	tests := []struct {
		name         string
		scale, rot   float64
		wantW, wantH int
	}{
		{"identity", 100, 0, 40, 20},
		{"zero scale means 100", 0, 0, 40, 20},
		{"half", 50, 0, 20, 10},
		{"double", 200, 0, 80, 40},
		{"quarter turn", 100, 90, 20, 40},
		{"full turn", 100, 360, 40, 20},
		{"negative quarter turn", 100, -90, 20, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScaleRotate(img, tt.scale, tt.rot)
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaleRotate_ClockwiseQuarterTurn(t *testing.T) {
	img := createInMemoryImage(4, 2, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})

	out := ScaleRotate(img, 100, 90)
	// Clockwise, the top-left corner moves to the top-right.
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("top-right: got %v, want red", got)
	}
}

func TestScaleRotate_ExpandsCanvas(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{0, 0, 255, 255})

	out := ScaleRotate(img, 100, 45)
	if out.Bounds().Dx() <= 20 || out.Bounds().Dy() <= 20 {
		t.Errorf("rotated canvas should grow, got %v", out.Bounds())
	}
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("uncovered corner should be transparent")
	}
	c := out.Bounds().Dx() / 2
	if got := out.NRGBAAt(c, c); got.B < 250 || got.A < 250 || got.R > 5 {
		t.Errorf("center should keep the texture color, got %v", got)
	}
}

func TestTile(t *testing.T) {
	tile := createInMemoryImage(2, 2, color.NRGBA{255, 0, 0, 255})
	tile.SetNRGBA(0, 0, color.NRGBA{0, 0, 255, 255})

	tests := []struct {
		name       string
		offX, offY int
		blueAt     image.Point
	}{
		{"no offset", 0, 0, image.Pt(4, 2)},
		{"positive offset", 1, 1, image.Pt(3, 3)},
		{"negative offset", -1, 0, image.Pt(1, 0)},
		{"offset larger than tile", 5, 4, image.Pt(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Tile(tile, 6, 5, tt.offX, tt.offY)
			if out.Bounds() != image.Rect(0, 0, 6, 5) {
				t.Fatalf("bounds: got %v", out.Bounds())
			}
			if got := out.NRGBAAt(tt.blueAt.X, tt.blueAt.Y); got != (color.NRGBA{0, 0, 255, 255}) {
				t.Errorf("%v: got %v, want blue", tt.blueAt, got)
			}
			for i := 3; i < len(out.Pix); i += 4 {
				if out.Pix[i] != 255 {
					t.Fatal("tiling left a gap")
				}
			}
		})
	}
}

func TestTile_EmptyTile(t *testing.T) {
	out := Tile(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 3, 3, 0, 0)
	if out.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("bounds: got %v", out.Bounds())
	}
}

func TestTileRotated_CoversCanvas(t *testing.T) {
	grey := color.NRGBA{200, 200, 200, 255}
	tile := createInMemoryImage(8, 8, grey)

	for _, deg := range []float64{30, 45, -60, 90, 135} {
		out := TileRotated(tile, 40, 25, 3, -2, deg)
		if out.Bounds() != image.Rect(0, 0, 40, 25) {
			t.Fatalf("%v deg: bounds %v", deg, out.Bounds())
		}
		for y := 0; y < 25; y++ {
			for x := 0; x < 40; x++ {
				c := out.NRGBAAt(x, y)
				if c.A != 255 || absDiff(c.R, 200) > 1 || absDiff(c.G, 200) > 1 || absDiff(c.B, 200) > 1 {
					t.Fatalf("%v deg: pixel (%d,%d) = %v, want grey", deg, x, y, c)
				}
			}
		}
	}
}

func TestTileRotated_QuarterTurnMatchesRotatedTile(t *testing.T) {
	tile := createInMemoryImage(2, 2, color.NRGBA{255, 0, 0, 255})
	tile.SetNRGBA(0, 0, color.NRGBA{0, 0, 255, 255})

	out := TileRotated(tile, 4, 4, 0, 0, 90)
	// A clockwise quarter turn moves the tile's top-left pixel to its top-right.
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("(1,0): got %v, want blue", got)
	}
	if got := out.NRGBAAt(3, 2); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("(3,2): got %v, want blue", got)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestSolidAndCropCenter(t *testing.T) {
	img := Solid(10, 6, color.NRGBA{9, 9, 9, 255})
	out := CropCenter(img, 4, 4)
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds: got %v", out.Bounds())
	}
	if out.NRGBAAt(0, 0) != (color.NRGBA{9, 9, 9, 255}) {
		t.Error("CropCenter changed the color")
	}
}
