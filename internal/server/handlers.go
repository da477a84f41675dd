package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math/rand"

	"github.com/mitchellh/go-homedir"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/shape"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_fill").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the imaging, fill or shape package
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	// Image information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_alpha_bands":
		return s.handleImageAlphaBands(args)

	// Color analysis
	case "image_color_match":
		return s.handleImageColorMatch(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Layer and shape previews
	case "image_gradient":
		return s.handleImageGradient(args)
	case "image_shape_mask":
		return s.handleImageShapeMask(args)

	// Editing
	case "image_fill":
		return s.handleImageFill(args)
	case "image_trim":
		return s.handleImageTrim(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func toleranceOr(t *int) int {
	if t == nil {
		return fill.DefaultTolerance
	}
	return *t
}

// bandMask returns the mask of the named band, or nil for an empty name.
func bandMask(bands fill.Bands, name string) (*imaging.Mask, error) {
	if name == "" {
		return nil, nil
	}
	b, ok := fill.ParseBand(name)
	if !ok {
		return nil, fmt.Errorf("unknown band %q (want opaque, transparent or semi_transparent)", name)
	}
	return bands.Mask(b), nil
}

// seededRand returns a source for cloud shapes; nil lets the generator seed
// from the clock.
func seededRand(seed *int64) *rand.Rand {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewSource(*seed))
}

// saveOutput writes img to path after expanding "~" and returns the final path.
func saveOutput(img image.Image, path string) (string, error) {
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand output path: %w", err)
	}
	if err := imaging.Save(img, out); err != nil {
		return "", err
	}
	return out, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

type imageLoadResult struct {
	*imaging.ImageInfo
	Bands fill.BandCounts `json:"bands"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	return &imageLoadResult{ImageInfo: info, Bands: fill.ClassifyBands(img).Counts()}, nil
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageAlphaBandsArgs struct {
	Path        string `json:"path"`
	Band        string `json:"band"`
	GridSpacing int    `json:"grid_spacing"`
}

type imageAlphaBandsResult struct {
	Counts  fill.BandCounts      `json:"counts"`
	Band    string               `json:"band,omitempty"`
	Preview *imaging.ImageResult `json:"preview,omitempty"`
}

func (s *Server) handleImageAlphaBands(args json.RawMessage) (interface{}, error) {
	var a imageAlphaBandsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	bands := fill.ClassifyBands(img)
	mask, err := bandMask(bands, a.Band)
	if err != nil {
		return nil, err
	}

	result := &imageAlphaBandsResult{Counts: bands.Counts()}
	if mask == nil {
		return result, nil
	}
	b, _ := fill.ParseBand(a.Band)
	result.Band = b.String()
	preview := imaging.MaskPreview(img, mask, imaging.PreviewOptions{GridSpacing: a.GridSpacing})
	if result.Preview, err = imaging.EncodePNG(preview); err != nil {
		return nil, err
	}
	return result, nil
}

// === Color Analysis Handlers ===

type imageColorMatchArgs struct {
	Path        string `json:"path"`
	Color       string `json:"color"`
	Tolerance   *int   `json:"tolerance,omitempty"`
	Band        string `json:"band"`
	Preview     *bool  `json:"preview,omitempty"`
	GridSpacing int    `json:"grid_spacing"`
}

type imageColorMatchResult struct {
	Color     string               `json:"color"`
	Tolerance int                  `json:"tolerance"`
	Matched   int                  `json:"matched"`
	Total     int                  `json:"total"`
	Preview   *imaging.ImageResult `json:"preview,omitempty"`
}

func (s *Server) handleImageColorMatch(args json.RawMessage) (interface{}, error) {
	var a imageColorMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	tol := toleranceOr(a.Tolerance)
	mask, err := fill.MatchHex(img, a.Color, tol)
	if err != nil {
		return nil, err
	}
	band, err := bandMask(fill.ClassifyBands(img), a.Band)
	if err != nil {
		return nil, err
	}
	total := mask.Width * mask.Height
	if band != nil {
		mask = fill.SelectRegion(band, fill.TargetSpecific, mask)
		total = band.Count()
	}

	c, _ := imaging.ParseHexColor(a.Color)
	result := &imageColorMatchResult{
		Color:     imaging.FormatHex(c),
		Tolerance: tol,
		Matched:   mask.Count(),
		Total:     total,
	}
	if a.Preview == nil || *a.Preview {
		preview := imaging.MaskPreview(img, mask, imaging.PreviewOptions{GridSpacing: a.GridSpacing})
		if result.Preview, err = imaging.EncodePNG(preview); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type imageDominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
	Band  string `json:"band"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	mask, err := bandMask(fill.ClassifyBands(img), a.Band)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, mask, a.Count)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type imageSampleColorResult struct {
	*imaging.ColorResult
	Band string `json:"band"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &imageSampleColorResult{ColorResult: c, Band: fill.ClassifyAlpha(c.RGBA.A).String()}, nil
}

// === Layer and Shape Preview Handlers ===

type imageGradientArgs struct {
	fill.GradientSpec
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageGradient(args json.RawMessage) (interface{}, error) {
	var a imageGradientArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = 256
	}
	if a.Height == 0 {
		a.Height = 256
	}
	stops, err := fill.ParseGradient(a.GradientSpec)
	if err != nil {
		return nil, err
	}
	layer, err := fill.GradientLayer(a.Width, a.Height, stops, a.Angle)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(layer)
}

type imageShapeMaskArgs struct {
	Shape           string `json:"shape"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Seed            *int64 `json:"seed,omitempty"`
	CustomShapePath string `json:"custom_shape_path"`
}

type imageShapeMaskResult struct {
	*imaging.ImageResult
	Shape  string `json:"shape"`
	Pixels int    `json:"pixels"`
}

func (s *Server) handleImageShapeMask(args json.RawMessage) (interface{}, error) {
	var a imageShapeMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = 256
	}
	if a.Height == 0 {
		a.Height = 256
	}
	kind, ok := shape.ParseKind(a.Shape)
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", a.Shape)
	}

	var mask *imaging.Mask
	var err error
	if kind == shape.Custom {
		src, loadErr := s.cache.Load(a.CustomShapePath)
		if loadErr != nil {
			return nil, loadErr
		}
		mask, err = shape.FromAlpha(src, a.Width, a.Height)
	} else {
		mask, err = shape.Generate(kind, a.Width, a.Height, seededRand(a.Seed))
	}
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(mask.Gray())
	if err != nil {
		return nil, err
	}
	return &imageShapeMaskResult{ImageResult: encoded, Shape: kind.String(), Pixels: mask.Count()}, nil
}

// === Editing Handlers ===

type imageFillArgs struct {
	Path        string    `json:"path"`
	Job         *fill.Job `json:"job,omitempty"`
	JobPath     string    `json:"job_path"`
	Seed        *int64    `json:"seed,omitempty"`
	Tolerance   *int      `json:"tolerance,omitempty"`
	OutputPath  string    `json:"output_path"`
	ReturnImage *bool     `json:"return_image,omitempty"`
}

type imageFillResult struct {
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Warnings   []fill.Warning       `json:"warnings"`
	OutputPath string               `json:"output_path,omitempty"`
	Image      *imaging.ImageResult `json:"image,omitempty"`
}

func (s *Server) handleImageFill(args json.RawMessage) (interface{}, error) {
	var a imageFillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	job, err := a.resolveJob()
	if err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	engine := s.engine
	if a.Seed != nil || a.Tolerance != nil {
		opts := []fill.Option{fill.WithCache(s.cache)}
		if a.Seed != nil {
			opts = append(opts, fill.WithSeed(*a.Seed))
		}
		if a.Tolerance != nil {
			opts = append(opts, fill.WithTolerance(*a.Tolerance))
		}
		engine = fill.NewEngine(opts...)
	}

	res, err := engine.Process(src, job)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		log.Printf("image_fill %s: %s", a.Path, w)
	}

	b := res.Image.Bounds()
	result := &imageFillResult{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Warnings: res.Warnings,
	}
	if result.Warnings == nil {
		result.Warnings = []fill.Warning{}
	}
	if a.OutputPath != "" {
		if result.OutputPath, err = saveOutput(res.Image, a.OutputPath); err != nil {
			return nil, err
		}
	}
	if a.ReturnImage == nil || *a.ReturnImage {
		if result.Image, err = imaging.EncodePNG(res.Image); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolveJob returns the inline job or the one loaded from job_path.
func (a *imageFillArgs) resolveJob() (fill.Job, error) {
	switch {
	case a.Job != nil && a.JobPath != "":
		return fill.Job{}, fmt.Errorf("give either job or job_path, not both")
	case a.JobPath != "":
		path, err := homedir.Expand(a.JobPath)
		if err != nil {
			return fill.Job{}, fmt.Errorf("failed to expand job path: %w", err)
		}
		return config.LoadJob(path)
	case a.Job != nil:
		job := *a.Job
		if err := config.ResolvePaths(&job, ""); err != nil {
			return fill.Job{}, err
		}
		return job, nil
	}
	return fill.Job{}, nil
}

type imageTrimArgs struct {
	Path       string        `json:"path"`
	Mode       fill.TrimMode `json:"mode"`
	Color      string        `json:"color"`
	Tolerance  *int          `json:"tolerance,omitempty"`
	OutputPath string        `json:"output_path"`
}

type trimBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageTrimResult struct {
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Trimmed    bool                 `json:"trimmed"`
	Box        *trimBox             `json:"box,omitempty"`
	OutputPath string               `json:"output_path,omitempty"`
	Image      *imaging.ImageResult `json:"image"`
}

func (s *Server) handleImageTrim(args json.RawMessage) (interface{}, error) {
	var a imageTrimArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	mask, err := fill.TrimMask(img, a.Mode, a.Color, toleranceOr(a.Tolerance))
	if err != nil {
		return nil, err
	}
	out, trimmed, err := fill.Trim(img, mask)
	if err != nil {
		return nil, err
	}

	b := out.Bounds()
	result := &imageTrimResult{Width: b.Dx(), Height: b.Dy(), Trimmed: trimmed}
	if box, ok := mask.BoundingBox(); ok && trimmed {
		result.Box = &trimBox{X1: box.Min.X, Y1: box.Min.Y, X2: box.Max.X, Y2: box.Max.Y}
	}
	if a.OutputPath != "" {
		if result.OutputPath, err = saveOutput(out, a.OutputPath); err != nil {
			return nil, err
		}
	}
	if result.Image, err = imaging.EncodePNG(out); err != nil {
		return nil, err
	}
	return result, nil
}
