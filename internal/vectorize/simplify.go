package vectorize

import "math"

// Simplify reduces a contour by dropping points that lie within tolerance of
// the last retained point.
//
// The first point is always kept. Each later point is kept only if its
// Euclidean distance to the most recently kept point is strictly greater than
// tolerance. The filter is order-dependent and is not Douglas-Peucker.
//
// A tolerance of zero or less, or a contour of two points or fewer, returns c
// unchanged. Otherwise a new slice is returned and c is not modified.
func Simplify(c Contour, tolerance float64) Contour {
	if tolerance <= 0 || len(c) <= 2 {
		return c
	}

	out := make(Contour, 1, len(c))
	out[0] = c[0]

	for _, p := range c[1:] {
		last := out[len(out)-1]
		dx := float64(p.X - last.X)
		dy := float64(p.Y - last.Y)
		if math.Sqrt(dx*dx+dy*dy) > tolerance {
			out = append(out, p)
		}
	}

	return out
}
