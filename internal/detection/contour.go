package detection

import "github.com/rnowosielski/dom-a-thor/internal/imaging"

// minContourSize is the noise floor: connected components with fewer
// pixels than this are discarded before scoring.
const minContourSize = 10

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is one connected component of edge-mask pixels, in the order the
// flood fill visited them. Ordering is an implementation detail except that
// the first and last points feed the coarse orientation estimate.
type Contour []Point

// TraceContours finds all connected components in a binary edge mask.
//
// The mask is scanned row-major; every unvisited set pixel seeds a
// stack-based 8-connected flood fill that collects the whole component into
// one Contour and marks it visited. The visited mask guarantees each pixel
// appears in at most one contour.
//
// Components smaller than 10 pixels are dropped as noise. The returned
// order is discovery order and carries no meaning beyond being
// deterministic for a given mask.
func TraceContours(mask *imaging.Buffer) []Contour {
	width, height := mask.Width, mask.Height
	visited := make([]bool, width*height)

	contours := make([]Contour, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if mask.Pix[idx] == 0 || visited[idx] {
				continue
			}
			contour := floodFill(mask, visited, x, y)
			if len(contour) >= minContourSize {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill collects the 8-connected component containing (startX, startY).
//
// Iterative with an explicit stack, not recursive, so component size is
// limited by heap memory rather than call-stack depth.
func floodFill(mask *imaging.Buffer, visited []bool, startX, startY int) Contour {
	width, height := mask.Width, mask.Height
	contour := make(Contour, 0, 64)
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] || mask.Pix[idx] == 0 {
			continue
		}

		visited[idx] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return contour
}
