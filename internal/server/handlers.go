package server

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/photo-svg-mcp/internal/imaging"
	"github.com/ironsheep/photo-svg-mcp/internal/vectorize"
)

// DefaultOutputPath is where svg_save writes when no path is given.
const DefaultOutputPath = "converted-image.svg"

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_to_svg").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional MCP request metadata.
	Meta *struct {
		ProgressToken interface{} `json:"progressToken,omitempty"`
	} `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// When the request carries _meta.progressToken, a notifications/progress
// message is sent before the tool starts and another when it finishes, so the
// client can show a processing indicator during long conversions.
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var token interface{}
	if params.Meta != nil {
		token = params.Meta.ProgressToken
	}
	if token != nil {
		s.notify("notifications/progress", map[string]interface{}{
			"progressToken": token,
			"progress":      0,
			"total":         1,
			"message":       "processing " + params.Name,
		})
	}

	result, err := s.executeTool(params.Name, params.Arguments)

	if token != nil {
		s.notify("notifications/progress", map[string]interface{}{
			"progressToken": token,
			"progress":      1,
			"total":         1,
		})
	}

	if err != nil {
		if s.cfg.Debug() {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_to_svg":
		return s.handleImageToSVG(args)
	case "image_threshold_preview":
		return s.handleImageThresholdPreview(args)
	case "svg_save":
		return s.handleSVGSave(args)
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

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// sourceArgs are the arguments shared by tools that threshold a source image.
// Pointer fields distinguish "omitted" from an explicit zero, which is
// meaningful for every one of them.
type sourceArgs struct {
	Path         string          `json:"path"`
	Threshold    *int            `json:"threshold"`
	MaxDimension *int            `json:"max_dimension"`
	BlurRadius   *float64        `json:"blur_radius"`
	Region       *imaging.Region `json:"region,omitempty"`
}

// prepare loads the source image and returns its pixel buffer and the
// effective threshold.
func (s *Server) prepare(a sourceArgs) (vectorize.PixelBuffer, int, error) {
	threshold := s.cfg.Threshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	opts := imaging.PrepareOptions{
		Region:       a.Region,
		MaxDimension: s.cfg.MaxDimension,
		BlurRadius:   s.cfg.BlurRadius,
	}
	if a.MaxDimension != nil {
		opts.MaxDimension = *a.MaxDimension
	}
	if a.BlurRadius != nil {
		opts.BlurRadius = *a.BlurRadius
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return vectorize.PixelBuffer{}, 0, err
	}
	buf, err := imaging.Prepare(img, opts)
	if err != nil {
		return vectorize.PixelBuffer{}, 0, err
	}
	return buf, threshold, nil
}

type imageToSVGArgs struct {
	sourceArgs
	Simplification *float64 `json:"simplification"`
	OutputPath     string   `json:"output_path"`
}

// ConvertResult is returned by image_to_svg.
type ConvertResult struct {
	DocumentID     string  `json:"document_id"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Threshold      int     `json:"threshold"`
	Simplification float64 `json:"simplification"`
	PathCount      int     `json:"path_count"`
	PointCount     int     `json:"point_count"`
	SVG            string  `json:"svg"`
	OutputPath     string  `json:"output_path,omitempty"`
}

func (s *Server) handleImageToSVG(args json.RawMessage) (interface{}, error) {
	var a imageToSVGArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := s.cfg.Simplification
	if a.Simplification != nil {
		tolerance = *a.Simplification
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("simplification must be >= 0, got %v", tolerance)
	}

	buf, threshold, err := s.prepare(a.sourceArgs)
	if err != nil {
		return nil, err
	}

	doc, err := vectorize.Run(buf, threshold, tolerance)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	entry := s.docs.Put(a.Path, doc)

	if s.cfg.Debug() {
		log.Printf("Converted %s (%dx%d): %d paths, %d points",
			a.Path, doc.Width, doc.Height, len(doc.Contours), doc.PointCount())
	}

	if a.OutputPath != "" {
		if err := writeDocument(a.OutputPath, doc); err != nil {
			return nil, err
		}
	}

	return &ConvertResult{
		DocumentID:     entry.ID,
		Width:          doc.Width,
		Height:         doc.Height,
		Threshold:      threshold,
		Simplification: tolerance,
		PathCount:      len(doc.Contours),
		PointCount:     doc.PointCount(),
		SVG:            doc.SVG,
		OutputPath:     a.OutputPath,
	}, nil
}

type imageThresholdPreviewArgs struct {
	sourceArgs
	ForegroundColor string `json:"foreground_color"`
	BackgroundColor string `json:"background_color"`
}

func (s *Server) handleImageThresholdPreview(args json.RawMessage) (interface{}, error) {
	var a imageThresholdPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	buf, threshold, err := s.prepare(a.sourceArgs)
	if err != nil {
		return nil, err
	}

	mask, err := vectorize.Binarize(buf, threshold)
	if err != nil {
		return nil, err
	}
	return imaging.MaskPreview(mask, a.ForegroundColor, a.BackgroundColor)
}

// === Document Handlers ===

type svgSaveArgs struct {
	DocumentID string `json:"document_id"`
	OutputPath string `json:"output_path"`
}

// SaveResult is returned by svg_save.
type SaveResult struct {
	DocumentID   string `json:"document_id"`
	OutputPath   string `json:"output_path"`
	BytesWritten int    `json:"bytes_written"`
}

func (s *Server) handleSVGSave(args json.RawMessage) (interface{}, error) {
	var a svgSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		a.OutputPath = DefaultOutputPath
	}

	entry, ok := s.docs.Get(a.DocumentID)
	if !ok {
		return nil, fmt.Errorf("unknown document: %s", a.DocumentID)
	}
	if err := writeDocument(a.OutputPath, entry.Doc); err != nil {
		return nil, err
	}

	return &SaveResult{
		DocumentID:   entry.ID,
		OutputPath:   a.OutputPath,
		BytesWritten: len(entry.Doc.SVG),
	}, nil
}

// writeDocument writes the document's SVG to path.
func writeDocument(path string, doc *vectorize.Document) error {
	if err := os.WriteFile(path, []byte(doc.SVG), 0o644); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}
