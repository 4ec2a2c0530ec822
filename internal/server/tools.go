package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes an optional crop rectangle argument.
var regionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x1": map[string]interface{}{"type": "integer", "description": "Left edge X (inclusive)"},
		"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y (inclusive)"},
		"x2": map[string]interface{}{"type": "integer", "description": "Right edge X (exclusive)"},
		"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y (exclusive)"},
	},
	"required":    []string{"x1", "y1", "x2", "y2"},
	"description": "Optional region of the source image to convert. If omitted, the whole image is used.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for later conversions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_to_svg",
			Description: "Convert an image to an SVG outline document. Pixels at or below the luminance threshold are traced " +
				"into filled black paths. Returns the SVG and a document_id that svg_save can write to disk later.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance threshold (0-255). Darker pixels are traced. Default 128",
						"minimum":     0,
						"maximum":     255,
					},
					"simplification": map[string]interface{}{
						"type":        "number",
						"description": "Minimum distance in pixels between kept path points (0-10). 0 disables simplification. Default 2",
						"minimum":     0,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale so neither side exceeds this many pixels before tracing. 0 keeps full size. Default 400",
						"minimum":     0,
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before thresholding to suppress speckle. Default 0",
						"minimum":     0,
					},
					"region": regionSchema,
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file path to also write the SVG to",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold_preview",
			Description: "Render the binary mask a threshold produces as a two-color PNG, without tracing. Use this to pick a threshold before converting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance threshold (0-255). Default 128",
						"minimum":     0,
						"maximum":     255,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale bound, as for image_to_svg. Default 400",
						"minimum":     0,
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before thresholding. Default 0",
						"minimum":     0,
					},
					"region": regionSchema,
					"foreground_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color for traced (dark) pixels. Default #000000",
					},
					"background_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color for background pixels. Default #FFFFFF",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "svg_save",
			Description: "Write a previously converted SVG document to disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document_id": map[string]interface{}{
						"type":        "string",
						"description": "document_id returned by image_to_svg",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Destination file path. Default converted-image.svg in the working directory",
					},
				},
				"required": []string{"document_id"},
			},
		},
	}
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
