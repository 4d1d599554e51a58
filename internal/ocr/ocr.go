// Package ocr recovers caption text from the margins of a plan photograph.
//
// Scanned land-plot sheets usually carry the plot number and scale notation
// in the strip between the plan rectangle and the photo edge. After the
// pipeline selects a rectangle, this package runs Tesseract over those
// margin strips and returns whatever text it finds. Caption extraction is
// strictly additive: it never influences the crop result and its failure is
// never fatal.
//
// Tesseract is only available on Linux builds with CGO enabled; elsewhere
// ExtractCaptions returns ErrUnavailable.
package ocr

import (
	"errors"
	"image"

	"github.com/rnowosielski/dom-a-thor/internal/detection"
)

// ErrUnavailable is returned on builds without Tesseract support.
var ErrUnavailable = errors.New("ocr: tesseract support not compiled in")

// Caption is one piece of recognized margin text.
type Caption struct {
	// Text is the recognized content with original spacing.
	Text string `json:"text"`

	// Confidence is the mean OCR confidence (0.0 to 1.0) over the words
	// in this caption.
	Confidence float64 `json:"confidence"`

	// Region is the margin strip the text was found in, in source-image
	// coordinates.
	Region image.Rectangle `json:"region"`
}

// marginRegions returns the up-to-four strips of the canvas that lie
// outside the selected rectangle: above, below, left of, and right of it.
// Degenerate (empty) strips are omitted.
func marginRegions(bounds image.Rectangle, rect *detection.Candidate) []image.Rectangle {
	inner := image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height).Intersect(bounds)
	if inner.Empty() {
		return nil
	}

	strips := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, inner.Min.Y), // above
		image.Rect(bounds.Min.X, inner.Max.Y, bounds.Max.X, bounds.Max.Y), // below
		image.Rect(bounds.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),   // left
		image.Rect(inner.Max.X, inner.Min.Y, bounds.Max.X, inner.Max.Y),   // right
	}

	regions := make([]image.Rectangle, 0, 4)
	for _, s := range strips {
		if !s.Empty() {
			regions = append(regions, s)
		}
	}
	return regions
}
