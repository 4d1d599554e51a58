package detection

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Annotate renders contour bounding boxes over a copy of the source image
// for visual inspection of a pipeline run.
//
// Every contour's bounding box is outlined in a distinct hue spread evenly
// around the color wheel; the selected candidate (if any) is drawn last in
// solid red with a 2-pixel stroke so it stands out from rejected boxes.
//
// The overlay is generated on demand for debugging only; the pipeline never
// persists it.
func Annotate(img image.Image, contours []Contour, selected *Candidate) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i, contour := range contours {
		hue := float64(i*360) / float64(len(contours))
		r, g, b := colorful.Hsv(hue, 0.9, 0.9).RGB255()
		box := boundingBox(contour)
		drawBox(out, box, color.RGBA{r, g, b, 255}, 1)
	}

	if selected != nil {
		box := image.Rect(selected.X, selected.Y, selected.X+selected.Width, selected.Y+selected.Height)
		drawBox(out, box, color.RGBA{255, 0, 0, 255}, 2)
	}
	return out
}

func boundingBox(contour Contour) image.Rectangle {
	minX, minY := contour[0].X, contour[0].Y
	maxX, maxY := minX, minY
	for _, p := range contour[1:] {
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
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// drawBox strokes a rectangle outline with the given thickness, clipped to
// the image bounds. The stroke sits on the outermost pixels of box and
// grows outward for thickness > 1.
func drawBox(img *image.RGBA, box image.Rectangle, c color.RGBA, thickness int) {
	bounds := img.Bounds()
	for t := 0; t < thickness; t++ {
		x0, x1 := box.Min.X-t, box.Max.X-1+t
		y0, y1 := box.Min.Y-t, box.Max.Y-1+t
		for x := x0; x <= x1; x++ {
			setIfIn(img, bounds, x, y0, c)
			setIfIn(img, bounds, x, y1, c)
		}
		for y := y0; y <= y1; y++ {
			setIfIn(img, bounds, x0, y, c)
			setIfIn(img, bounds, x1, y, c)
		}
	}
}

func setIfIn(img *image.RGBA, bounds image.Rectangle, x, y int, c color.RGBA) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}
