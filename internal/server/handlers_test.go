package server

import (
	"bufio"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createSquareImageFile writes a white PNG with a black square covering the
// inclusive range [lo, hi] on both axes and returns its path.
func createSquareImageFile(t *testing.T, size, lo, hi int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x >= lo && x <= hi && y >= lo && y <= hi {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "square.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode result %q: %v", text, err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 20, 5, 10)

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	decodeResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": path}), &info)

	if info.Width != 20 || info.Height != 20 || info.Format != "png" {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestHandleToolsCall_ImageToSVG(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	var result ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{
		"path":           path,
		"simplification": 0,
	}), &result)

	if result.Width != 8 || result.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", result.Width, result.Height)
	}
	if result.Threshold != 128 {
		t.Errorf("Threshold: got %d, want default 128", result.Threshold)
	}
	if result.PathCount != 1 || result.PointCount != 15 {
		t.Errorf("paths/points: got %d/%d, want 1/15", result.PathCount, result.PointCount)
	}
	if !strings.HasPrefix(result.SVG, `<svg width="8" height="8" viewBox="0 0 8 8" xmlns="http://www.w3.org/2000/svg">`) {
		t.Errorf("unexpected SVG header: %s", result.SVG)
	}
	if strings.Count(result.SVG, `fill="black" stroke="none"`) != 1 {
		t.Errorf("expected one black path: %s", result.SVG)
	}
	if _, ok := s.docs.Get(result.DocumentID); !ok {
		t.Error("converted document was not stored")
	}
}

func TestHandleToolsCall_ImageToSVG_Collapsed(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	var result ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{
		"path":           path,
		"simplification": 100,
	}), &result)

	if result.PathCount != 0 || strings.Contains(result.SVG, "<path") {
		t.Errorf("expected empty document, got %d paths: %s", result.PathCount, result.SVG)
	}
}

func TestHandleToolsCall_ImageToSVG_ThresholdZero(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	var result ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{
		"path":           path,
		"threshold":      0,
		"simplification": 0,
	}), &result)

	// Pure black has luminance 0, which is still at or below the threshold.
	if result.Threshold != 0 || result.PathCount != 1 {
		t.Errorf("threshold/paths: got %d/%d, want 0/1", result.Threshold, result.PathCount)
	}
}

func TestHandleToolsCall_ImageToSVG_Downscale(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 100, 20, 79)

	var result ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{
		"path":          path,
		"max_dimension": 50,
	}), &result)

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
}

func TestHandleToolsCall_ImageToSVG_OutputPath(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)
	out := filepath.Join(t.TempDir(), "out.svg")

	var result ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{
		"path":        path,
		"output_path": out,
	}), &result)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != result.SVG {
		t.Error("written file differs from returned SVG")
	}
}

func TestHandleToolsCall_ImageToSVG_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing file", map[string]interface{}{"path": "/nonexistent/image.png"}},
		{"negative simplification", map[string]interface{}{"path": path, "simplification": -1}},
		{"negative max dimension", map[string]interface{}{"path": path, "max_dimension": -5}},
		{"region outside image", map[string]interface{}{
			"path":   path,
			"region": map[string]interface{}{"x1": 0, "y1": 0, "x2": 50, "y2": 4},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "image_to_svg", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_ThresholdPreview(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 10, 2, 5)

	var result struct {
		Width            int    `json:"width"`
		ForegroundPixels int    `json:"foreground_pixels"`
		ImageBase64      string `json:"image_base64"`
		MimeType         string `json:"mime_type"`
	}
	decodeResult(t, callTool(t, s, "image_threshold_preview", map[string]interface{}{
		"path":             path,
		"foreground_color": "#FF0000",
	}), &result)

	if result.Width != 10 || result.ForegroundPixels != 16 {
		t.Errorf("width/foreground: got %d/%d, want 10/16", result.Width, result.ForegroundPixels)
	}
	if result.MimeType != "image/png" || result.ImageBase64 == "" {
		t.Errorf("unexpected image payload: %s, %d bytes", result.MimeType, len(result.ImageBase64))
	}

	resp := callTool(t, s, "image_threshold_preview", map[string]interface{}{
		"path":             path,
		"foreground_color": "red",
	})
	if resp.Error == nil {
		t.Error("expected error for invalid color")
	}
}

func TestHandleToolsCall_SVGSave(t *testing.T) {
	s, _ := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	var converted ConvertResult
	decodeResult(t, callTool(t, s, "image_to_svg", map[string]interface{}{"path": path}), &converted)

	out := filepath.Join(t.TempDir(), "saved.svg")
	var saved SaveResult
	decodeResult(t, callTool(t, s, "svg_save", map[string]interface{}{
		"document_id": converted.DocumentID,
		"output_path": out,
	}), &saved)

	if saved.OutputPath != out || saved.BytesWritten != len(converted.SVG) {
		t.Errorf("unexpected save result: %+v", saved)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != converted.SVG {
		t.Error("saved file differs from converted SVG")
	}

	resp := callTool(t, s, "svg_save", map[string]interface{}{"document_id": "missing"})
	if resp.Error == nil {
		t.Error("expected error for unknown document")
	}
}

func TestHandleToolsCall_ProgressNotifications(t *testing.T) {
	s, out := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	params, _ := json.Marshal(map[string]interface{}{
		"name":      "image_to_svg",
		"arguments": map[string]interface{}{"path": path},
		"_meta":     map[string]interface{}{"progressToken": "tok-1"},
	})
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/call", Params: params})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var progress []float64
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var n struct {
			Method string `json:"method"`
			Params struct {
				ProgressToken string  `json:"progressToken"`
				Progress      float64 `json:"progress"`
			} `json:"params"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &n); err != nil {
			t.Fatalf("invalid notification: %v", err)
		}
		if n.Method != "notifications/progress" || n.Params.ProgressToken != "tok-1" {
			t.Errorf("unexpected notification: %s", scanner.Text())
		}
		progress = append(progress, n.Params.Progress)
	}

	if len(progress) != 2 || progress[0] != 0 || progress[1] != 1 {
		t.Errorf("progress sequence: got %v, want [0 1]", progress)
	}
}

func TestHandleToolsCall_NoProgressWithoutToken(t *testing.T) {
	s, out := newTestServer(t)
	path := createSquareImageFile(t, 8, 2, 5)

	callTool(t, s, "image_to_svg", map[string]interface{}{"path": path})
	if out.Len() != 0 {
		t.Errorf("unexpected notifications: %s", out.String())
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t)
	resp := callTool(t, s, "image_detect_circles", map[string]interface{}{})

	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected tool execution error, got %+v", resp.Error)
	}
	if !strings.Contains(resp.Error.Data.(string), "unknown tool") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s, _ := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp == nil || resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602 error, got %+v", resp)
	}
}
