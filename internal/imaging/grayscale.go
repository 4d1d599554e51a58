package imaging

import (
	"image"
	"math"
)

// Grayscale collapses a color image into a single-channel Buffer using
// ITU-R BT.601 luminance weights:
//
//	gray = 0.299*R + 0.587*G + 0.114*B
//
// The result is rounded to the nearest integer; the alpha channel is
// ignored. This is a pure function with no failure modes.
func Grayscale(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.Set(x, y, uint8(math.Round(lum)))
		}
	}
	return out
}
