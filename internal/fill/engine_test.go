package fill

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/ironsheep/image-fill-mcp/internal/shape"
)

func TestProcess_RedToGreen(t *testing.T) {
	img := createInMemoryImage(100, 100, red)
	job := Job{
		Opaque: RegionSettings{TargetMode: TargetAll, FillMode: FillColor, FillColor: "#00FF00"},
	}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.Image.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds: got %v", res.Image.Bounds())
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if got := res.Image.NRGBAAt(x, y); got != green {
				t.Fatalf("pixel (%d,%d): got %v, want green", x, y, got)
			}
		}
	}
	if img.NRGBAAt(0, 0) != red {
		t.Error("Process modified its input")
	}
}

func TestProcess_TransparentCornerToBlue(t *testing.T) {
	img := createInMemoryImage(100, 100, red)
	fillRect(img, image.Rect(0, 0, 50, 50), none)
	job := Job{
		Transparent: RegionSettings{
			FillMode:   FillColor,
			FillColor:  "#0000FF",
			TransMode:  TransChange,
			TransValue: intPtr(100),
		},
	}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			want := red
			if x < 50 && y < 50 {
				want = blue
			}
			if got := res.Image.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestProcess_MaintainIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	res, err := NewEngine().Process(img, Job{
		Opaque:      RegionSettings{TargetMode: TargetSpecific, TargetColor: "#123456"},
		Semi:        RegionSettings{TargetMode: TargetNonSpecific, TargetColor: "#FFFFFF"},
		Transparent: RegionSettings{},
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !bytes.Equal(res.Image.Pix, img.Pix) {
		t.Error("Maintain settings changed pixels")
	}
}

func TestProcess_FillKeepsAlphaUnlessChanged(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{200, 200, 200, 100})
	job := Job{Semi: RegionSettings{FillMode: FillColor, FillColor: "#FF0000"}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(5, 5); got != (color.NRGBA{255, 0, 0, 100}) {
		t.Errorf("got %v, want red with alpha 100", got)
	}
}

func TestProcess_AlphaOnlyChange(t *testing.T) {
	img := createInMemoryImage(4, 4, red)
	job := Job{Opaque: RegionSettings{TransMode: TransChange, TransValue: intPtr(0)}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(1, 1); got != (color.NRGBA{255, 0, 0, 0}) {
		t.Errorf("got %v, want red with alpha 0", got)
	}
}

func TestProcess_SpecificColor(t *testing.T) {
	img := createInMemoryImage(10, 10, red)
	fillRect(img, image.Rect(0, 0, 10, 5), blue)
	job := Job{Opaque: RegionSettings{
		TargetMode:  TargetSpecific,
		TargetColor: "#0000FF",
		FillMode:    FillColor,
		FillColor:   "#00FF00",
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(2, 2); got != green {
		t.Errorf("matched pixel: got %v, want green", got)
	}
	if got := res.Image.NRGBAAt(2, 7); got != red {
		t.Errorf("unmatched pixel: got %v, want red", got)
	}
}

func TestProcess_AutoTargetColor(t *testing.T) {
	img := createInMemoryImage(10, 10, blue)
	fillRect(img, image.Rect(0, 0, 10, 2), red)
	job := Job{Opaque: RegionSettings{
		TargetMode:  TargetSpecific,
		TargetColor: "auto",
		FillMode:    FillColor,
		FillColor:   "#00FF00",
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(5, 5); got != green {
		t.Errorf("dominant blue pixel: got %v, want green", got)
	}
	if got := res.Image.NRGBAAt(5, 0); got != red {
		t.Errorf("minority red pixel: got %v, want red", got)
	}
}

func TestProcess_InvalidTargetColorWarns(t *testing.T) {
	img := createInMemoryImage(10, 10, red)

	tests := []struct {
		name  string
		mode  TargetMode
		wantR uint8
	}{
		// Nothing matches, so nothing is filled.
		{"specific", TargetSpecific, 255},
		// Nothing matches, so the whole band is filled.
		{"non specific", TargetNonSpecific, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Job{Opaque: RegionSettings{
				TargetMode:  tt.mode,
				TargetColor: "#ZZZZZZ",
				FillMode:    FillColor,
				FillColor:   "#00FF00",
			}}
			res, err := NewEngine().Process(img, job)
			if err != nil {
				t.Fatalf("invalid color must not fail the job: %v", err)
			}
			if len(res.Warnings) != 1 || res.Warnings[0].Stage != "opaque" {
				t.Errorf("warnings: got %v, want one opaque warning", res.Warnings)
			}
			if got := res.Image.NRGBAAt(3, 3).R; got != tt.wantR {
				t.Errorf("red channel: got %d, want %d", got, tt.wantR)
			}
		})
	}
}

func TestProcess_InvalidFillColorWarns(t *testing.T) {
	img := createInMemoryImage(5, 5, red)
	job := Job{Opaque: RegionSettings{FillMode: FillColor, FillColor: "green"}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings: got %v, want one", res.Warnings)
	}
	if !bytes.Equal(res.Image.Pix, img.Pix) {
		t.Error("invalid fill color changed pixels")
	}
}

func TestProcess_MissingTextureWarns(t *testing.T) {
	img := createInMemoryImage(8, 8, red)
	job := Job{Opaque: RegionSettings{
		FillMode: FillImage,
		Texture:  &TextureSpec{Path: "/nonexistent/wood.png"},
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("missing texture must not fail the job: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "texture") {
		t.Errorf("warnings: got %v, want one texture warning", res.Warnings)
	}
	if !bytes.Equal(res.Image.Pix, img.Pix) {
		t.Error("missing texture changed pixels")
	}
}

func TestProcess_TextureFill(t *testing.T) {
	path := createTestImageFile(t, "tile.png", createInMemoryImage(3, 3, blue))
	img := createInMemoryImage(9, 9, red)
	job := Job{Opaque: RegionSettings{FillMode: FillImage, Texture: &TextureSpec{Path: path}}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(8, 8); got != blue {
		t.Errorf("got %v, want blue", got)
	}
}

func TestProcess_RotatedTextureFillsEveryPixel(t *testing.T) {
	grey := color.NRGBA{200, 200, 200, 255}
	path := createTestImageFile(t, "tile.png", createInMemoryImage(8, 8, grey))
	img := createInMemoryImage(40, 40, red)
	job := Job{Opaque: RegionSettings{
		FillMode: FillImage,
		Texture:  &TextureSpec{Path: path, Rotation: 45},
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := res.Image.NRGBAAt(x, y)
			if math.Abs(float64(c.R)-200) > 1 || math.Abs(float64(c.G)-200) > 1 || math.Abs(float64(c.B)-200) > 1 || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want texture grey", x, y, c)
			}
		}
	}
}

func TestProcess_GradientFill(t *testing.T) {
	img := createInMemoryImage(50, 10, red)
	job := Job{Opaque: RegionSettings{
		FillMode: FillGradient,
		Gradient: &GradientSpec{Start: "#000000", End: "#FFFFFF", Angle: 0},
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(0, 5); got != black {
		t.Errorf("left: got %v, want black", got)
	}
	if got := res.Image.NRGBAAt(49, 5); got != white {
		t.Errorf("right: got %v, want white", got)
	}
}

func TestProcess_GradientWithoutSettingsWarns(t *testing.T) {
	img := createInMemoryImage(5, 5, red)
	res, err := NewEngine().Process(img, Job{Opaque: RegionSettings{FillMode: FillGradient}})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings: got %v, want one", res.Warnings)
	}
}

func TestProcess_RegionOrderUsesAccumulatedColors(t *testing.T) {
	// Opaque left half, semi right half, both red.
	img := createInMemoryImage(10, 10, red)
	fillRect(img, image.Rect(5, 0, 10, 10), color.NRGBA{255, 0, 0, 128})

	job := Job{
		// Turns the opaque half semi-transparent green.
		Opaque: RegionSettings{FillMode: FillColor, FillColor: "#00FF00", TransMode: TransChange, TransValue: intPtr(50)},
		// Only touches green pixels of the original semi band, of which there are none.
		Semi: RegionSettings{TargetMode: TargetSpecific, TargetColor: "#00FF00", FillMode: FillColor, FillColor: "#0000FF"},
	}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(2, 2); got != (color.NRGBA{0, 255, 0, 128}) {
		t.Errorf("opaque half: got %v, want semi green", got)
	}
	if got := res.Image.NRGBAAt(7, 2); got != (color.NRGBA{255, 0, 0, 128}) {
		t.Errorf("semi half: got %v, want untouched red", got)
	}
}

func TestProcess_BackgroundOverlay(t *testing.T) {
	img := createInMemoryImage(10, 10, red)
	fillRect(img, image.Rect(0, 0, 5, 10), none)
	job := Job{Background: BackgroundSettings{Enabled: true, Material: MaterialColor, Color: "#0000FF"}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(1, 1); got != blue {
		t.Errorf("background: got %v, want blue", got)
	}
	if got := res.Image.NRGBAAt(8, 1); got != red {
		t.Errorf("subject: got %v, want red", got)
	}
}

func TestProcess_BackgroundCutoutUsesOriginal(t *testing.T) {
	img := createInMemoryImage(10, 10, red)
	fillRect(img, image.Rect(0, 0, 5, 10), none)
	job := Job{
		// The transparent half becomes half-opaque green before the background
		// runs; the cutout still follows the original opaque half.
		Transparent: RegionSettings{
			FillMode:   FillColor,
			FillColor:  "#00FF00",
			TransMode:  TransChange,
			TransValue: intPtr(50),
		},
		Background: BackgroundSettings{
			Enabled:      true,
			Material:     MaterialColor,
			Color:        "#0000FF",
			Mode:         BackgroundCutout,
			CutoutTarget: CutoutOpaque,
		},
	}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	want := color.NRGBA{0, 255, 0, 128}
	if got := res.Image.NRGBAAt(1, 1); got != want {
		t.Errorf("edited half: got %v, want %v with no background", got, want)
	}
	if got := res.Image.NRGBAAt(8, 1); got != red {
		t.Errorf("originally opaque half: got %v, want red", got)
	}
}

func TestProcess_BackgroundCutoutTransparent(t *testing.T) {
	img := createInMemoryImage(10, 10, red)
	fillRect(img, image.Rect(0, 0, 5, 10), none)
	job := Job{Background: BackgroundSettings{
		Enabled:      true,
		Material:     MaterialColor,
		Color:        "#0000FF",
		Mode:         BackgroundCutout,
		CutoutTarget: CutoutTransparent,
	}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := res.Image.NRGBAAt(1, 1); got != blue {
		t.Errorf("open half: got %v, want blue", got)
	}
	if got := res.Image.NRGBAAt(8, 1); got != red {
		t.Errorf("subject: got %v, want red", got)
	}
}

func TestProcess_CircleCrop(t *testing.T) {
	img := createInMemoryImage(200, 200, red)
	job := Job{Crop: CropSettings{Shape: shape.Circle}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Image.Bounds() != img.Bounds() {
		t.Fatalf("crop without trim changed bounds to %v", res.Image.Bounds())
	}
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			d := math.Hypot(float64(x)+0.5-100, float64(y)+0.5-100)
			a := res.Image.NRGBAAt(x, y).A
			switch {
			case d < 99 && a != 255:
				t.Fatalf("pixel (%d,%d) at distance %.1f: alpha %d, want 255", x, y, d, a)
			case d > 101 && a != 0:
				t.Fatalf("pixel (%d,%d) at distance %.1f: alpha %d, want 0", x, y, d, a)
			}
		}
	}
}

func TestProcess_CropAndTrim(t *testing.T) {
	img := createInMemoryImage(300, 200, red)
	job := Job{Crop: CropSettings{Shape: shape.Circle, Trim: true}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	b := res.Image.Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("trimmed size: got %dx%d, want 200x200", b.Dx(), b.Dy())
	}
	assertBordersVisible(t, res.Image)
}

func TestProcess_CloudCropIsSeeded(t *testing.T) {
	img := createInMemoryImage(120, 120, red)
	job := Job{Crop: CropSettings{Shape: shape.Cloud}}

	a, err := NewEngine(WithSeed(7)).Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	b, err := NewEngine(WithSeed(7)).Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("same seed should give the same cloud")
	}
	visible := 0
	for i := 3; i < len(a.Image.Pix); i += 4 {
		if a.Image.Pix[i] != 0 {
			visible++
		}
	}
	if visible == 0 || visible == 120*120 {
		t.Errorf("cloud crop left %d visible pixels", visible)
	}
}

func TestProcess_CustomShape(t *testing.T) {
	shapeImg := createInMemoryImage(10, 10, none)
	fillRect(shapeImg, image.Rect(0, 0, 5, 10), red)
	path := createTestImageFile(t, "shape.png", shapeImg)

	img := createInMemoryImage(20, 20, blue)
	job := Job{Crop: CropSettings{Shape: shape.Custom, CustomShapePath: path}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Image.NRGBAAt(2, 10).A != 255 {
		t.Error("left half should stay visible")
	}
	if res.Image.NRGBAAt(17, 10).A != 0 {
		t.Error("right half should be cut away")
	}
}

func TestProcess_MissingCustomShapeWarns(t *testing.T) {
	img := createInMemoryImage(20, 20, blue)
	job := Job{Crop: CropSettings{Shape: shape.Custom, CustomShapePath: "/nonexistent/shape.png"}}

	res, err := NewEngine().Process(img, job)
	if err != nil {
		t.Fatalf("missing custom shape must not fail the job: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Stage != "crop" {
		t.Errorf("warnings: got %v, want one crop warning", res.Warnings)
	}
	if !bytes.Equal(res.Image.Pix, img.Pix) {
		t.Error("missing custom shape changed pixels")
	}
}

func TestProcess_EmptyRaster(t *testing.T) {
	engine := NewEngine()

	for _, src := range []image.Image{nil, image.NewNRGBA(image.Rect(0, 0, 0, 10))} {
		_, err := engine.Process(src, Job{})
		var perr *ProcessError
		if !errors.As(err, &perr) {
			t.Fatalf("got %v, want *ProcessError", err)
		}
		if !errors.Is(err, ErrEmptyRaster) {
			t.Errorf("got %v, want ErrEmptyRaster", err)
		}
	}
}

func TestProcess_AcceptsOffsetImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 20, 20))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	res, err := NewEngine().Process(img, Job{Opaque: RegionSettings{FillMode: FillColor, FillColor: "#000"}})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Image.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds: got %v, want origin-anchored 10x10", res.Image.Bounds())
	}
	if got := res.Image.NRGBAAt(0, 0); got != black {
		t.Errorf("got %v, want black", got)
	}
}

func TestProcess_Concurrent(t *testing.T) {
	engine := NewEngine(WithSeed(1))
	job := Job{
		Opaque: RegionSettings{FillMode: FillColor, FillColor: "#00FF00"},
		Crop:   CropSettings{Shape: shape.Star5Sharp, Trim: true},
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Process(createInMemoryImage(64, 64, red), job); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Process failed: %v", err)
	}
}

func TestWithTolerance(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{100, 100, 100, 255})
	job := Job{Opaque: RegionSettings{
		TargetMode:  TargetSpecific,
		TargetColor: "#6E6E6E", // distance 30
		FillMode:    FillColor,
		FillColor:   "#000000",
	}}

	res, err := NewEngine(WithTolerance(9)).Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Image.NRGBAAt(0, 0).R != 100 {
		t.Error("tolerance 9 should not match a distance of 30")
	}

	job.Opaque.Tolerance = intPtr(10)
	res, err = NewEngine(WithTolerance(9)).Process(img, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Image.NRGBAAt(0, 0).R != 0 {
		t.Error("region tolerance 10 should override the engine default")
	}
}
