package imaging

import (
	"image/color"
	"testing"
)

func TestMaskPreview(t *testing.T) {
	img := createInMemoryImage(16, 16, color.NRGBA{0, 0, 0, 255})
	mask := NewMask(16, 16)
	mask.Set(3, 3, true)

	out := MaskPreview(img, mask, PreviewOptions{Tint: color.NRGBA{255, 255, 255, 255}})
	if got := out.NRGBAAt(3, 3); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("selected pixel: got %v, want full tint", got)
	}
	if got := out.NRGBAAt(4, 4); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("unselected pixel: got %v, want unchanged black", got)
	}
}

func TestMaskPreview_TransparentShowsCheckerboard(t *testing.T) {
	img := createInMemoryImage(16, 16, color.NRGBA{0, 0, 0, 0})

	out := MaskPreview(img, nil, PreviewOptions{})
	if out.NRGBAAt(0, 0) == out.NRGBAAt(8, 0) {
		t.Error("neighbouring checker cells should differ")
	}
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			t.Fatal("preview should be opaque")
		}
	}
}

func TestMaskPreview_Grid(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{0, 0, 0, 255})
	grid := color.NRGBA{0, 255, 0, 255}

	out := MaskPreview(img, nil, PreviewOptions{GridSpacing: 10, GridColor: grid})
	if out.NRGBAAt(10, 3) != grid || out.NRGBAAt(3, 10) != grid {
		t.Error("grid lines missing")
	}
	if out.NRGBAAt(3, 3) == grid {
		t.Error("grid drawn off the spacing")
	}
}
