package vectorize

const (
	// MaxContourPoints caps a single trace so a large dark region cannot run away.
	MaxContourPoints = 1000

	// MinContourPoints is the smallest traced contour that is kept. Shorter
	// traces are speckle and are dropped before simplification.
	MinContourPoints = 11
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contour is an ordered point sequence. The order is both the visiting order
// during tracing and the drawing order in the SVG path.
type Contour []Point

// neighbours lists the 8-connected offsets in the order they are tried:
// NW, N, NE, W, E, SW, S, SE.
var neighbours = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Trace extracts contours from a mask by greedy neighbour-following.
//
// Interior cells (rows 1..H-2, columns 1..W-2) are scanned in row-major order.
// Each unvisited Foreground cell seeds a walk that repeatedly moves to the
// first neighbour (in NW, N, NE, W, E, SW, S, SE order) that is an interior,
// Foreground, unvisited cell. A walk ends when no neighbour qualifies or when
// it reaches MaxContourPoints. Walks shorter than MinContourPoints are
// discarded.
//
// No cell appears in more than one contour. A mask with no qualifying region,
// including any mask smaller than 3x3, yields an empty result.
func Trace(mask *Mask) []Contour {
	if mask == nil || mask.Width < 3 || mask.Height < 3 {
		return nil
	}

	visited := make([]bool, mask.Width*mask.Height)
	var contours []Contour

	for y := 1; y < mask.Height-1; y++ {
		for x := 1; x < mask.Width-1; x++ {
			idx := y*mask.Width + x
			if mask.Pix[idx] != Foreground || visited[idx] {
				continue
			}
			c := walk(mask, visited, x, y)
			if len(c) >= MinContourPoints {
				contours = append(contours, c)
			}
		}
	}

	return contours
}

// walk follows unvisited foreground neighbours from (x, y), marking each
// visited cell in visited.
func walk(mask *Mask, visited []bool, x, y int) Contour {
	w, h := mask.Width, mask.Height
	c := make(Contour, 0, 64)

	for len(c) < MaxContourPoints {
		visited[y*w+x] = true
		c = append(c, Point{X: x, Y: y})

		found := false
		for _, d := range neighbours {
			nx, ny := x+d.X, y+d.Y
			if nx < 1 || nx > w-2 || ny < 1 || ny > h-2 {
				continue
			}
			n := ny*w + nx
			if mask.Pix[n] == Foreground && !visited[n] {
				x, y = nx, ny
				found = true
				break
			}
		}
		if !found {
			break
		}
	}

	return c
}
