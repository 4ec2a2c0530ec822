// Package vectorize converts raster pixel data into an SVG outline document.
//
// The conversion is a linear pipeline of four stages, each a pure function of
// its inputs:
//
//  1. Binarize: RGBA pixels -> two-level Mask using a luminance threshold
//  2. Trace: Mask -> ordered point sequences (Contours)
//  3. Simplify: per-contour distance filter against the last retained point
//  4. WriteSVG: Contours -> one filled, closed <path> per contour
//
// Run and Convert compose the stages. Nothing in this package keeps state
// between calls; the visited set used while tracing is allocated per call.
//
// # Polarity
//
// Pixels with luminance at or below the threshold are foreground (mask value 0)
// and are traced. Brighter pixels are background (mask value 255). Dark shapes
// on a light background therefore become black paths.
//
// # Tracing Semantics
//
// Trace is a greedy single-visit walk, not a boundary-following algorithm.
// Every foreground pixel is assigned to at most one contour, and one visually
// connected region may yield several open point sequences. The neighbour order
// and the 1000-point cap are fixed because both are observable in the output.
//
// # Coordinate System
//
// Points are integer pixel coordinates with (0,0) at the top-left corner.
// Contours never include the outermost ring of pixels.
//
// # Errors
//
// Failures are reported as ErrInvalidInput (empty or short pixel data) or
// ErrProcessingFailure (anything unexpected during conversion). A failed
// conversion yields no document.
package vectorize
