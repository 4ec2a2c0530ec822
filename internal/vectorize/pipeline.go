package vectorize

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for zero-area buffers or missing pixel data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProcessingFailure is returned when conversion fails unexpectedly.
	ErrProcessingFailure = errors.New("processing failure")
)

// Document is the result of one conversion.
type Document struct {
	// Width and Height are the source buffer dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Contours are the drawn contours after simplification, in path order.
	// Each has at least MinPathPoints points.
	Contours []Contour `json:"-"`

	// SVG is the serialized outline document.
	SVG string `json:"svg"`
}

// PointCount returns the total number of points across all paths.
func (d *Document) PointCount() int {
	n := 0
	for _, c := range d.Contours {
		n += len(c)
	}
	return n
}

// Run converts a pixel buffer into an outline document.
//
// Parameters:
//   - buf: Decoded RGBA pixels. Not modified.
//   - threshold: Luminance threshold passed to Binarize.
//   - tolerance: Simplification tolerance passed to Simplify; 0 disables it.
//
// Returns:
//   - *Document: The traced contours and their SVG serialization.
//   - error: ErrInvalidInput or ErrProcessingFailure (use errors.Is). On error
//     no document is returned.
func Run(buf PixelBuffer, threshold int, tolerance float64) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrProcessingFailure, r)
		}
	}()

	mask, err := Binarize(buf, threshold)
	if err != nil {
		return nil, err
	}

	traced := Trace(mask)
	kept := make([]Contour, 0, len(traced))
	for _, c := range traced {
		s := Simplify(c, tolerance)
		if len(s) < MinPathPoints {
			continue
		}
		kept = append(kept, s)
	}

	return &Document{
		Width:    buf.Width,
		Height:   buf.Height,
		Contours: kept,
		SVG:      RenderSVG(kept, buf.Width, buf.Height),
	}, nil
}

// Convert is Run returning only the SVG string.
func Convert(buf PixelBuffer, threshold int, tolerance float64) (string, error) {
	doc, err := Run(buf, threshold, tolerance)
	if err != nil {
		return "", err
	}
	return doc.SVG, nil
}
