package vectorize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MinPathPoints is the fewest points a contour needs to be drawn.
const MinPathPoints = 3

// WriteSVG writes an SVG document with one filled, closed path per contour.
//
// The root element carries width, height and a viewBox of "0 0 width height".
// Each contour with at least MinPathPoints points becomes
//
//	<path d="M x0 y0 L x1 y1 ... Z" fill="black" stroke="none"/>
//
// in input order. Shorter contours are skipped.
func WriteSVG(w io.Writer, contours []Contour, width, height int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		width, height, width, height)

	for _, c := range contours {
		if len(c) < MinPathPoints {
			continue
		}
		fmt.Fprintf(bw, `<path d="M %d %d`, c[0].X, c[0].Y)
		for _, p := range c[1:] {
			fmt.Fprintf(bw, " L %d %d", p.X, p.Y)
		}
		bw.WriteString(` Z" fill="black" stroke="none"/>`)
	}

	bw.WriteString("</svg>")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

// RenderSVG returns the document WriteSVG would produce as a string.
func RenderSVG(contours []Contour, width, height int) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteSVG(&sb, contours, width, height)
	return sb.String()
}
