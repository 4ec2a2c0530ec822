package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/photo-svg-mcp/internal/vectorize"
)

// Default preview colors.
const (
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
)

// PreviewResult contains a rendered binary mask encoded as base64 PNG.
type PreviewResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ForegroundPixels counts mask cells at or below the threshold. These are
	// the cells the tracer can visit.
	ForegroundPixels int `json:"foreground_pixels"`

	// ForegroundPercent is ForegroundPixels as a percentage of all pixels.
	ForegroundPercent float64 `json:"foreground_percent"`

	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// MaskPreview renders a mask as a two-color PNG.
//
// Parameters:
//   - mask: Binary mask from vectorize.Binarize.
//   - foregroundHex: Color for Foreground cells, "#RRGGBB" or "#RGB".
//     Empty means DefaultForeground.
//   - backgroundHex: Color for Background cells. Empty means DefaultBackground.
//
// Returns an error if a color cannot be parsed or PNG encoding fails.
func MaskPreview(mask *vectorize.Mask, foregroundHex, backgroundHex string) (*PreviewResult, error) {
	fg, err := parseHexColor(foregroundHex, DefaultForeground)
	if err != nil {
		return nil, fmt.Errorf("invalid foreground color: %w", err)
	}
	bg, err := parseHexColor(backgroundHex, DefaultBackground)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}

	out := image.NewNRGBA(image.Rect(0, 0, mask.Width, mask.Height))
	count := 0
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y) == vectorize.Foreground {
				out.SetNRGBA(x, y, fg)
				count++
			} else {
				out.SetNRGBA(x, y, bg)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview image: %w", err)
	}

	return &PreviewResult{
		Width:             mask.Width,
		Height:            mask.Height,
		ForegroundPixels:  count,
		ForegroundPercent: float64(count) / float64(mask.Width*mask.Height) * 100,
		ImageBase64:       base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:          "image/png",
	}, nil
}

// parseHexColor parses an opaque hex color, falling back to def when hex is empty.
func parseHexColor(hex, def string) (color.NRGBA, error) {
	if hex == "" {
		hex = def
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
