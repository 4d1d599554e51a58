package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Mirror flips an image horizontally and/or vertically.
//
// The two flags are independent; setting both is equivalent to rotating the
// image by 180°. Mirroring is a pure post-processing transform applied
// after the crop pipeline: scanned plans are sometimes photographed through
// tracing paper and arrive reversed relative to the registry geometry.
//
// With both flags false the input image is returned unchanged.
func Mirror(img image.Image, flipH, flipV bool) image.Image {
	out := img
	if flipH {
		out = transform.FlipH(out)
	}
	if flipV {
		out = transform.FlipV(out)
	}
	return out
}
