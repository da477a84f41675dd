package fill

import (
	"fmt"
	"image"
	"math/rand"
	"strings"
	"time"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/shape"
)

// AutoColor as a target color stands for the dominant color of the band.
const AutoColor = "auto"

// Warning describes a degradation the engine recovered from: a bad color, a
// missing texture or shape file. The affected step became a no-op.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Stage + ": " + w.Message
}

// Result is the output of one Process call.
type Result struct {
	Image    *image.NRGBA
	Warnings []Warning
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes cloud shapes reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// WithTolerance sets the color tolerance used by regions, cutouts and trims
// that do not override it.
func WithTolerance(tolerance int) Option {
	return func(e *Engine) {
		e.tolerance = tolerance
	}
}

// WithCache shares an image cache for textures and custom shapes.
func WithCache(cache *imaging.ImageCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// Engine runs fill jobs. It holds no per-image state, so one Engine may
// process independent images from several goroutines at once.
type Engine struct {
	cache     *imaging.ImageCache
	tolerance int
	seed      *int64
}

// NewEngine creates an engine with the default tolerance and a private cache.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = imaging.NewImageCache()
	}
	return e
}

// Tolerance returns the engine's default color tolerance.
func (e *Engine) Tolerance() int {
	return e.tolerance
}

// run carries the state of a single Process call.
type run struct {
	e        *Engine
	orig     *image.NRGBA
	bands    Bands
	rng      *rand.Rand
	warnings []Warning
}

func (r *run) warn(stage, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Stage: stage, Message: fmt.Sprintf(format, args...)})
}

// Process applies job to src and returns the new image. src is copied and
// never modified.
//
// Alpha bands are taken from src once. Regions run in the order opaque,
// transparent, semi-transparent, each matching colors against the result of
// the previous one. The background, the shape crop and the trim follow.
//
// Bad colors and unreadable files degrade the affected step to a no-op and are
// listed in Result.Warnings. Only unexpected failures return an error, always
// a *ProcessError.
func (e *Engine) Process(src image.Image, job Job) (*Result, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, &ProcessError{Stage: "input", Err: ErrEmptyRaster}
	}

	r := &run{e: e, orig: imaging.Clone(src)}
	r.bands = ClassifyBands(r.orig)
	if e.seed != nil {
		r.rng = rand.New(rand.NewSource(*e.seed))
	} else {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cur := r.orig
	var err error
	for _, band := range bandOrder {
		cur, err = r.region(cur, band, job.Region(band))
		if err != nil {
			return nil, &ProcessError{Stage: band.String(), Err: err}
		}
	}

	if job.Background.Enabled {
		if cur, err = r.background(cur, job.Background); err != nil {
			return nil, &ProcessError{Stage: "background", Err: err}
		}
	}

	if cur, err = r.crop(cur, job.Crop); err != nil {
		return nil, &ProcessError{Stage: "crop", Err: err}
	}

	return &Result{Image: cur, Warnings: r.warnings}, nil
}

func (r *run) tolerance(override *int) int {
	if override != nil {
		return *override
	}
	return r.e.tolerance
}

// region applies the settings of one band to cur.
func (r *run) region(cur *image.NRGBA, band Band, s RegionSettings) (*image.NRGBA, error) {
	if s.IsNoop() {
		return cur, nil
	}
	stage := band.String()
	bandMask := r.bands.Mask(band)
	if bandMask.Empty() {
		return cur, nil
	}

	var matched *imaging.Mask
	if s.TargetMode != TargetAll {
		matched = r.match(cur, bandMask, stage, s.TargetColor, r.tolerance(s.Tolerance))
	}
	mask := SelectRegion(bandMask, s.TargetMode, matched)
	if mask.Empty() {
		return cur, nil
	}

	w, h := mask.Width, mask.Height
	if s.FillMode != FillMaintain {
		layer := r.layer(stage, s.FillMode, s.FillColor, s.Gradient, s.Texture, w, h)
		if layer != nil {
			var err error
			if cur, err = Composite(cur, layer, mask); err != nil {
				return nil, err
			}
		}
	}
	if s.TransMode == TransChange {
		return RewriteAlpha(cur, mask, TargetAlpha(s.Opacity()))
	}
	return cur, nil
}

// match builds the color mask of a region. "auto" resolves to the dominant
// color of the band in cur.
func (r *run) match(cur *image.NRGBA, bandMask *imaging.Mask, stage, target string, tolerance int) *imaging.Mask {
	if strings.EqualFold(strings.TrimSpace(target), AutoColor) {
		c, ok := imaging.DominantColor(cur, bandMask)
		if !ok {
			return imaging.NewMask(bandMask.Width, bandMask.Height)
		}
		return MatchColor(cur, c, tolerance)
	}
	m, err := MatchHex(cur, target, tolerance)
	if err != nil {
		r.warn(stage, "target color %q ignored: %v", target, err)
	}
	return m
}

// layer generates a fill layer. It returns nil, with a warning, when the
// layer cannot be built.
func (r *run) layer(stage string, mode FillMode, hex string, grad *GradientSpec, tex *TextureSpec, w, h int) *image.NRGBA {
	switch mode {
	case FillColor:
		c, err := imaging.ParseHexColor(hex)
		if err != nil {
			r.warn(stage, "fill color %q ignored: %v", hex, err)
			return nil
		}
		return SolidLayer(w, h, c)
	case FillGradient:
		if grad == nil {
			r.warn(stage, "gradient fill has no gradient settings")
			return nil
		}
		stops, err := ParseGradient(*grad)
		if err != nil {
			r.warn(stage, "gradient ignored: %v", err)
			return nil
		}
		layer, err := GradientLayer(w, h, stops, grad.Angle)
		if err != nil {
			r.warn(stage, "gradient ignored: %v", err)
			return nil
		}
		return layer
	case FillImage:
		if tex == nil {
			r.warn(stage, "image fill has no texture settings")
			return nil
		}
		layer, err := TextureLayer(r.e.cache, *tex, w, h)
		if err != nil {
			r.warn(stage, "texture ignored: %v", err)
			return nil
		}
		return layer
	}
	return nil
}

func materialFill(m Material) FillMode {
	switch m {
	case MaterialGradient:
		return FillGradient
	case MaterialImage:
		return FillImage
	default:
		return FillColor
	}
}

func (r *run) background(cur *image.NRGBA, s BackgroundSettings) (*image.NRGBA, error) {
	const stage = "background"
	b := cur.Bounds()
	hex := s.Color
	if s.Material == MaterialColor && hex == "" {
		hex = "#FFFFFF"
	}
	layer := r.layer(stage, materialFill(s.Material), hex, s.Gradient, s.Texture, b.Dx(), b.Dy())
	if layer == nil {
		return cur, nil
	}

	var cutout *imaging.Mask
	if s.Mode == BackgroundCutout {
		m, err := CutoutMask(r.orig, r.bands, s.CutoutTarget, s.CutoutColor, r.tolerance(s.Tolerance))
		if err != nil {
			r.warn(stage, "cutout color %q ignored: %v", s.CutoutColor, err)
		}
		cutout = m
	}
	return ApplyBackground(cur, layer, s.Mode, cutout)
}

func (r *run) crop(cur *image.NRGBA, s CropSettings) (*image.NRGBA, error) {
	const stage = "crop"
	if s.Shape != shape.None {
		mask, err := r.shapeMask(s, cur.Bounds().Dx(), cur.Bounds().Dy())
		if err != nil {
			return nil, err
		}
		if mask != nil {
			if cur, err = ApplyShape(cur, mask); err != nil {
				return nil, err
			}
		}
	}

	if !s.Trim {
		return cur, nil
	}
	mask, err := TrimMask(cur, s.TrimMode, s.TrimColor, r.tolerance(s.Tolerance))
	if err != nil {
		r.warn(stage, "trim color %q ignored: %v", s.TrimColor, err)
	}
	out, _, err := Trim(cur, mask)
	return out, err
}

// shapeMask returns the crop mask, or nil with a warning when a custom shape
// cannot be loaded.
func (r *run) shapeMask(s CropSettings, w, h int) (*imaging.Mask, error) {
	if s.Shape != shape.Custom {
		return shape.Generate(s.Shape, w, h, r.rng)
	}
	if s.CustomShapePath == "" {
		r.warn("crop", "custom shape has no custom_shape_path")
		return nil, nil
	}
	src, err := r.e.cache.Load(s.CustomShapePath)
	if err != nil {
		r.warn("crop", "custom shape ignored: %v", err)
		return nil, nil
	}
	m, err := shape.FromAlpha(src, w, h)
	if err != nil {
		r.warn("crop", "custom shape ignored: %v", err)
		return nil, nil
	}
	return m, nil
}
