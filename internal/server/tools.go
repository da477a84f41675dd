package server

import (
	"github.com/ironsheep/image-fill-mcp/internal/shape"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func bandProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"opaque", "transparent", "semi_transparent"},
		"description": desc,
	}
}

func toleranceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Color tolerance: a pixel matches when |dR|+|dG|+|dB| <= tolerance*3 (default 30)",
		"default":     30,
	}
}

func gradientProperties() map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{"type": "string", "description": "Start color as hex (#RGB, #RRGGBB or #RRGGBBAA)"},
		"mid":   map[string]interface{}{"type": "string", "description": "Optional middle color"},
		"end":   map[string]interface{}{"type": "string", "description": "End color as hex"},
		"angle": map[string]interface{}{"type": "number", "description": "Direction in degrees, clockwise; 0 runs left to right, 90 top to bottom"},
	}
}

func textureSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":         map[string]interface{}{"type": "string", "description": "Texture image path"},
			"scale_pct":    map[string]interface{}{"type": "number", "description": "Texture scale in percent (default 100)"},
			"rotation_deg": map[string]interface{}{"type": "number", "description": "Clockwise rotation in degrees"},
			"offset_x":     map[string]interface{}{"type": "integer"},
			"offset_y":     map[string]interface{}{"type": "integer"},
		},
	}
}

func regionSchema(band string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Settings for the " + band + " band",
		"properties": map[string]interface{}{
			"target_mode":  map[string]interface{}{"type": "string", "enum": []string{"all", "specific", "non_specific"}},
			"target_color": map[string]interface{}{"type": "string", "description": "Hex color or \"auto\" for the band's dominant color"},
			"tolerance":    toleranceProperty(),
			"trans_mode":   map[string]interface{}{"type": "string", "enum": []string{"maintain", "change"}},
			"trans_val":    map[string]interface{}{"type": "integer", "description": "New opacity in percent (0-100, default 100)"},
			"fill_mode":    map[string]interface{}{"type": "string", "enum": []string{"maintain", "color", "gradient", "image"}},
			"fill_color":   map[string]interface{}{"type": "string"},
			"gradient":     map[string]interface{}{"type": "object", "properties": gradientProperties()},
			"texture":      textureSchema(),
		},
	}
}

func jobSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Fill job. Omitted sections leave the image unchanged.",
		"properties": map[string]interface{}{
			"opaque":           regionSchema("opaque"),
			"transparent":      regionSchema("transparent"),
			"semi_transparent": regionSchema("semi-transparent"),
			"background": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled":       map[string]interface{}{"type": "boolean"},
					"material":      map[string]interface{}{"type": "string", "enum": []string{"color", "gradient", "image"}},
					"mode":          map[string]interface{}{"type": "string", "enum": []string{"overlay", "cutout"}},
					"color":         map[string]interface{}{"type": "string", "description": "Background color (default #FFFFFF)"},
					"gradient":      map[string]interface{}{"type": "object", "properties": gradientProperties()},
					"texture":       textureSchema(),
					"cutout_target": map[string]interface{}{"type": "string", "enum": []string{"opaque", "transparent", "color"}},
					"cutout_color":  map[string]interface{}{"type": "string"},
					"tolerance":     toleranceProperty(),
				},
			},
			"crop": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"shape":             map[string]interface{}{"type": "string", "enum": shape.Kinds()},
					"custom_shape_path": map[string]interface{}{"type": "string", "description": "Image whose alpha defines the custom shape"},
					"trim":              map[string]interface{}{"type": "boolean"},
					"trim_mode":         map[string]interface{}{"type": "string", "enum": []string{"alpha", "color"}},
					"trim_color":        map[string]interface{}{"type": "string"},
					"tolerance":         toleranceProperty(),
				},
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and how many pixels fall in each alpha band (opaque >= 250, transparent <= 10, semi-transparent otherwise).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_alpha_bands",
			Description: "Count the pixels of each alpha band. When a band is named, also return a PNG preview with that band highlighted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"band": bandProperty("Band to highlight in the preview"),
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between preview grid lines (0 = no grid)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color analysis
		{
			Name:        "image_color_match",
			Description: "Find the pixels matching a color within a tolerance, optionally restricted to one alpha band. Returns the match count and a highlighted PNG preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"color":     map[string]interface{}{"type": "string", "description": "Target color as hex"},
					"tolerance": toleranceProperty(),
					"band":      bandProperty("Only count matches inside this band"),
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a PNG preview of the match (default true)",
						"default":     true,
					},
					"grid_spacing": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Return the N most dominant colors of the image or of one alpha band.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default 5)",
						"default":     5,
					},
					"band": bandProperty("Only analyse this band"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a pixel and the alpha band it belongs to.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Layer and shape previews
		{
			Name:        "image_gradient",
			Description: "Render a linear gradient layer as PNG, as a region or background fill would use it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(gradientProperties(), map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer", "description": "Width in pixels (default 256)"},
					"height": map[string]interface{}{"type": "integer", "description": "Height in pixels (default 256)"},
				}),
				"required": []string{"start", "end"},
			},
		},
		{
			Name:        "image_shape_mask",
			Description: "Render a crop shape mask as a grayscale PNG (white = kept).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"shape":             map[string]interface{}{"type": "string", "enum": shape.Kinds()},
					"width":             map[string]interface{}{"type": "integer", "description": "Width in pixels (default 256)"},
					"height":            map[string]interface{}{"type": "integer", "description": "Height in pixels (default 256)"},
					"seed":              map[string]interface{}{"type": "integer", "description": "Seed for cloud shapes"},
					"custom_shape_path": map[string]interface{}{"type": "string", "description": "Image whose alpha defines the custom shape"},
				},
				"required": []string{"shape"},
			},
		},

		// Editing
		{
			Name:        "image_fill",
			Description: "Run a fill job on an image: edit the color and opacity of each alpha band, add a background, crop to a shape and trim. Bad colors or missing files are reported as warnings and skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"job":         jobSchema(),
					"job_path":    map[string]interface{}{"type": "string", "description": "TOML, YAML or JSON job file, instead of job"},
					"seed":        map[string]interface{}{"type": "integer", "description": "Seed for cloud shapes"},
					"tolerance":   toleranceProperty(),
					"output_path": map[string]interface{}{"type": "string", "description": "Write the result here; the extension picks the format (JPEG and BMP are flattened onto white)"},
					"return_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the result as base64 PNG (default true)",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_trim",
			Description: "Crop an image to the bounding box of its non-transparent pixels, or of the pixels matching a color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"mode":        map[string]interface{}{"type": "string", "enum": []string{"alpha", "color"}, "default": "alpha"},
					"color":       map[string]interface{}{"type": "string", "description": "Color to trim to in color mode"},
					"tolerance":   toleranceProperty(),
					"output_path": map[string]interface{}{"type": "string"},
				},
				"required": []string{"path"},
			},
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
