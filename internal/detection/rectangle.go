package detection

import "math"

// borderPadPercent defines the anti-border-hugging margin as a percentage
// of the image's smaller dimension. Candidates whose bounding box reaches
// into this margin on any side are rejected: a real plan rectangle sits
// interior to the photograph, while boxes touching the margin are almost
// always the photo frame or the paper edge.
const borderPadPercent = 2.0

// Candidate is a scored rectangle derived from one contour.
type Candidate struct {
	// X, Y is the top-left corner of the axis-aligned bounding box.
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the bounding box extents in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Angle is a coarse orientation estimate in degrees: the direction
	// from the contour's first to its last recorded point. It is an
	// approximation used only for axis-alignment scoring, not a
	// minimum-area-rectangle fit.
	Angle float64 `json:"angle"`
}

// SelectRectangle picks the contour whose bounding box most plausibly
// outlines the plan rectangle.
//
// Parameters:
//   - contours: Output of TraceContours.
//   - width, height: Dimensions of the (scaled) source image.
//   - minAreaPercent: Minimum bounding-box area as a percentage of the
//     image area. Smaller boxes are rejected.
//
// Returns the best candidate, or nil when no contour qualifies.
//
// # Scoring
//
// Each surviving candidate scores boxArea × axisAlignmentFactor, where
//
//	axisAlignmentFactor = 1 - min(|angle mod 90|, 90-|angle mod 90|)/10
//
// so rectangles within a few degrees of axis-aligned are strongly favored.
// The highest score wins; ties keep the first-encountered candidate, which
// is deterministic because contour discovery order is a row-major scan.
func SelectRectangle(contours []Contour, width, height int, minAreaPercent float64) *Candidate {
	imageArea := float64(width * height)
	minArea := imageArea * minAreaPercent / 100
	pad := int(borderPadPercent / 100 * float64(min(width, height)))

	var best *Candidate
	bestScore := math.Inf(-1)

	for _, contour := range contours {
		minX, minY := width, height
		maxX, maxY := 0, 0
		for _, p := range contour {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}

		boxWidth := maxX - minX + 1
		boxHeight := maxY - minY + 1
		area := float64(boxWidth * boxHeight)
		if area < minArea {
			continue
		}
		if minX <= pad || minY <= pad || maxX >= width-1-pad || maxY >= height-1-pad {
			continue
		}

		first, last := contour[0], contour[len(contour)-1]
		angle := math.Atan2(float64(last.Y-first.Y), float64(last.X-first.X)) * 180 / math.Pi

		score := area * axisAlignmentFactor(angle)
		if score > bestScore {
			bestScore = score
			best = &Candidate{
				X:      minX,
				Y:      minY,
				Width:  boxWidth,
				Height: boxHeight,
				Angle:  angle,
			}
		}
	}
	return best
}

// axisAlignmentFactor maps an orientation angle in degrees to a score
// multiplier that peaks at 1.0 for axis-aligned rectangles and falls off by
// 0.1 per degree of deviation from the nearest 90° multiple.
func axisAlignmentFactor(angle float64) float64 {
	dev := math.Abs(math.Mod(angle, 90))
	if 90-dev < dev {
		dev = 90 - dev
	}
	return 1 - dev/10
}
