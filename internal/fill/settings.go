package fill

import (
	"strings"

	"github.com/ironsheep/image-fill-mcp/internal/shape"
)

// TargetMode selects which pixels of an alpha band a region edits.
type TargetMode int

const (
	// TargetAll edits the whole band.
	TargetAll TargetMode = iota
	// TargetSpecific edits band pixels matching the target color.
	TargetSpecific
	// TargetNonSpecific edits band pixels not matching the target color.
	TargetNonSpecific
)

// TransMode selects whether a region's alpha is rewritten.
type TransMode int

const (
	TransMaintain TransMode = iota
	TransChange
)

// FillMode selects the replacement content of a region.
type FillMode int

const (
	FillMaintain FillMode = iota
	FillColor
	FillGradient
	FillImage
)

// Material selects what a background layer is made of.
type Material int

const (
	MaterialColor Material = iota
	MaterialGradient
	MaterialImage
)

// BackgroundMode selects how the background meets the subject.
type BackgroundMode int

const (
	// BackgroundOverlay pastes the subject over the background using the
	// subject's own alpha.
	BackgroundOverlay BackgroundMode = iota
	// BackgroundCutout punches a hole in the background where the original
	// image matches the cutout target, then composites the subject over it.
	BackgroundCutout
)

// CutoutTarget selects the pixels of the original image that punch through
// the background in cutout mode.
type CutoutTarget int

const (
	CutoutOpaque CutoutTarget = iota
	CutoutTransparent
	CutoutColor
)

// TrimMode selects the mask a trim crops to.
type TrimMode int

const (
	// TrimAlpha crops to the bounding box of non-transparent pixels.
	TrimAlpha TrimMode = iota
	// TrimColor crops to the bounding box of pixels matching the trim color.
	TrimColor
)

var (
	targetModeNames   = []string{"all", "specific", "non_specific"}
	transModeNames    = []string{"maintain", "change"}
	fillModeNames     = []string{"maintain", "color", "gradient", "image"}
	materialNames     = []string{"color", "gradient", "image"}
	bgModeNames       = []string{"overlay", "cutout"}
	cutoutTargetNames = []string{"opaque", "transparent", "color"}
	trimModeNames     = []string{"alpha", "color"}
)

// enumIndex maps text onto names, ignoring case and treating '-' and ' ' as
// '_'. Unknown or empty text yields 0, the default of every setting.
func enumIndex(names []string, text string) int {
	norm := strings.ToLower(strings.TrimSpace(text))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, n := range names {
		if n == norm || strings.ReplaceAll(n, "_", "") == norm {
			return i
		}
	}
	return 0
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func (m TargetMode) String() string     { return enumName(targetModeNames, int(m)) }
func (m TransMode) String() string      { return enumName(transModeNames, int(m)) }
func (m FillMode) String() string       { return enumName(fillModeNames, int(m)) }
func (m Material) String() string       { return enumName(materialNames, int(m)) }
func (m BackgroundMode) String() string { return enumName(bgModeNames, int(m)) }
func (t CutoutTarget) String() string   { return enumName(cutoutTargetNames, int(t)) }
func (m TrimMode) String() string       { return enumName(trimModeNames, int(m)) }

// MarshalText implements the encoding.TextMarshaler interface for TargetMode
func (m TargetMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for TargetMode
func (m *TargetMode) UnmarshalText(text []byte) error {
	*m = TargetMode(enumIndex(targetModeNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for TransMode
func (m TransMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for TransMode
func (m *TransMode) UnmarshalText(text []byte) error {
	*m = TransMode(enumIndex(transModeNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for FillMode
func (m FillMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for FillMode
func (m *FillMode) UnmarshalText(text []byte) error {
	*m = FillMode(enumIndex(fillModeNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for Material
func (m Material) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for Material
func (m *Material) UnmarshalText(text []byte) error {
	*m = Material(enumIndex(materialNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for BackgroundMode
func (m BackgroundMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for BackgroundMode
func (m *BackgroundMode) UnmarshalText(text []byte) error {
	*m = BackgroundMode(enumIndex(bgModeNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for CutoutTarget
func (t CutoutTarget) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for CutoutTarget
func (t *CutoutTarget) UnmarshalText(text []byte) error {
	*t = CutoutTarget(enumIndex(cutoutTargetNames, string(text)))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface for TrimMode
func (m TrimMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface for TrimMode
func (m *TrimMode) UnmarshalText(text []byte) error {
	*m = TrimMode(enumIndex(trimModeNames, string(text)))
	return nil
}

// GradientSpec describes a linear gradient. Mid is optional and turns the
// gradient into a three-stop one. Angle is in degrees, clockwise, with 0
// running left to right and 90 top to bottom.
type GradientSpec struct {
	Start string  `json:"start" toml:"start" yaml:"start"`
	Mid   string  `json:"mid,omitempty" toml:"mid,omitempty" yaml:"mid,omitempty"`
	End   string  `json:"end" toml:"end" yaml:"end"`
	Angle float64 `json:"angle" toml:"angle" yaml:"angle"`
}

// TextureSpec describes a tiled image fill. ScalePct of 0 means 100.
// Rotation is clockwise degrees.
type TextureSpec struct {
	Path     string  `json:"path" toml:"path" yaml:"path"`
	ScalePct float64 `json:"scale_pct,omitempty" toml:"scale_pct,omitempty" yaml:"scale_pct,omitempty"`
	Rotation float64 `json:"rotation_deg,omitempty" toml:"rotation_deg,omitempty" yaml:"rotation_deg,omitempty"`
	OffsetX  int     `json:"offset_x,omitempty" toml:"offset_x,omitempty" yaml:"offset_x,omitempty"`
	OffsetY  int     `json:"offset_y,omitempty" toml:"offset_y,omitempty" yaml:"offset_y,omitempty"`
}

// RegionSettings configures the edit applied to one alpha band.
//
// The zero value is a no-op: TargetAll, TransMaintain, FillMaintain.
type RegionSettings struct {
	TargetMode TargetMode `json:"target_mode" toml:"target_mode" yaml:"target_mode"`
	// TargetColor is a hex color, or "auto" for the band's dominant color.
	TargetColor string `json:"target_color,omitempty" toml:"target_color,omitempty" yaml:"target_color,omitempty"`
	// Tolerance overrides the engine's color tolerance for this region.
	Tolerance *int `json:"tolerance,omitempty" toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	TransMode TransMode `json:"trans_mode" toml:"trans_mode" yaml:"trans_mode"`
	// TransValue is the new opacity in percent (0 transparent, 100 opaque).
	// Nil means 100.
	TransValue *int `json:"trans_val,omitempty" toml:"trans_val,omitempty" yaml:"trans_val,omitempty"`

	FillMode  FillMode      `json:"fill_mode" toml:"fill_mode" yaml:"fill_mode"`
	FillColor string        `json:"fill_color,omitempty" toml:"fill_color,omitempty" yaml:"fill_color,omitempty"`
	Gradient  *GradientSpec `json:"gradient,omitempty" toml:"gradient,omitempty" yaml:"gradient,omitempty"`
	Texture   *TextureSpec  `json:"texture,omitempty" toml:"texture,omitempty" yaml:"texture,omitempty"`
}

// IsNoop reports whether the settings leave every pixel untouched.
func (r RegionSettings) IsNoop() bool {
	return r.FillMode == FillMaintain && r.TransMode == TransMaintain
}

// Opacity returns TransValue clamped to 0..100, defaulting to 100.
func (r RegionSettings) Opacity() int {
	if r.TransValue == nil {
		return 100
	}
	return clampInt(*r.TransValue, 0, 100)
}

// BackgroundSettings configures the optional background layer.
type BackgroundSettings struct {
	Enabled  bool           `json:"enabled" toml:"enabled" yaml:"enabled"`
	Material Material       `json:"material" toml:"material" yaml:"material"`
	Mode     BackgroundMode `json:"mode" toml:"mode" yaml:"mode"`

	Color    string        `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Gradient *GradientSpec `json:"gradient,omitempty" toml:"gradient,omitempty" yaml:"gradient,omitempty"`
	Texture  *TextureSpec  `json:"texture,omitempty" toml:"texture,omitempty" yaml:"texture,omitempty"`

	CutoutTarget CutoutTarget `json:"cutout_target" toml:"cutout_target" yaml:"cutout_target"`
	CutoutColor  string       `json:"cutout_color,omitempty" toml:"cutout_color,omitempty" yaml:"cutout_color,omitempty"`
	Tolerance    *int         `json:"tolerance,omitempty" toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// CropSettings configures the final shape crop and trim.
type CropSettings struct {
	Shape           shape.Kind `json:"shape" toml:"shape" yaml:"shape"`
	CustomShapePath string     `json:"custom_shape_path,omitempty" toml:"custom_shape_path,omitempty" yaml:"custom_shape_path,omitempty"`

	Trim      bool     `json:"trim" toml:"trim" yaml:"trim"`
	TrimMode  TrimMode `json:"trim_mode" toml:"trim_mode" yaml:"trim_mode"`
	TrimColor string   `json:"trim_color,omitempty" toml:"trim_color,omitempty" yaml:"trim_color,omitempty"`
	Tolerance *int     `json:"tolerance,omitempty" toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// Job bundles everything the engine needs for one image.
type Job struct {
	Opaque      RegionSettings     `json:"opaque" toml:"opaque" yaml:"opaque"`
	Transparent RegionSettings     `json:"transparent" toml:"transparent" yaml:"transparent"`
	Semi        RegionSettings     `json:"semi_transparent" toml:"semi_transparent" yaml:"semi_transparent"`
	Background  BackgroundSettings `json:"background" toml:"background" yaml:"background"`
	Crop        CropSettings       `json:"crop" toml:"crop" yaml:"crop"`
}

// Region returns the settings for band.
func (j Job) Region(b Band) RegionSettings {
	switch b {
	case BandTransparent:
		return j.Transparent
	case BandSemi:
		return j.Semi
	default:
		return j.Opaque
	}
}

// Paths returns pointers to every file path in the job, for callers that
// resolve or expand them.
func (j *Job) Paths() []*string {
	var out []*string
	for _, r := range []*RegionSettings{&j.Opaque, &j.Transparent, &j.Semi} {
		if r.Texture != nil {
			out = append(out, &r.Texture.Path)
		}
	}
	if j.Background.Texture != nil {
		out = append(out, &j.Background.Texture.Path)
	}
	out = append(out, &j.Crop.CustomShapePath)
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
