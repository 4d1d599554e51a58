//go:build !cgo || !linux

package ocr

import (
	"image"

	"github.com/rnowosielski/dom-a-thor/internal/detection"
)

// ExtractCaptions is unavailable without Tesseract; it always returns
// ErrUnavailable on this build.
func ExtractCaptions(img image.Image, rect *detection.Candidate, language string) ([]Caption, error) {
	return nil, ErrUnavailable
}
