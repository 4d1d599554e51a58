package imaging

import "math"

// Edge mask values used between classification and hysteresis tracing.
const (
	edgeNone   = 0
	edgeWeak   = 128
	edgeStrong = 255
)

// DetectEdges computes a binary edge mask from a blurred grayscale Buffer
// using Sobel gradients, non-maximum suppression, and two-threshold
// hysteresis.
//
// Parameters:
//   - src: Blurred grayscale plane.
//   - low: Weak-edge cutoff (0-255). Gradient magnitudes at or below this
//     are discarded outright.
//   - high: Strong-edge cutoff (0-255). Magnitudes above this always
//     survive; magnitudes between low and high survive only if connected
//     to a strong edge.
//
// Returns a Buffer of the same dimensions containing only 0 and 255.
//
// # Algorithm
//
//  1. Sobel gradients gx, gy at every interior pixel (the one-pixel border
//     is excluded). magnitude = sqrt(gx²+gy²), direction = atan2(gy, gx).
//  2. Non-maximum suppression: the gradient direction is quantized into
//     four 45°-wide bins (horizontal, two diagonals, vertical) and the
//     pixel survives only if its magnitude is >= both neighbors along that
//     direction. Ties keep the pixel.
//  3. Classification: magnitude > high is strong (255), magnitude > low is
//     weak (128), anything else is dropped.
//  4. Hysteresis: a stack-based flood fill seeded at every strong pixel
//     promotes 8-connected weak pixels to strong and continues from them.
//     Weak pixels the fill never reaches end up as 0.
func DetectEdges(src *Buffer, low, high int) *Buffer {
	width, height := src.Width, src.Height

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	sobelX := [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var gx, gy int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := int(src.At(x+kx, y+ky))
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			idx := y*width + x
			magnitude[idx] = math.Sqrt(float64(gx*gx + gy*gy))
			direction[idx] = math.Atan2(float64(gy), float64(gx))
		}
	}

	// Non-maximum suppression followed by provisional classification.
	mask := NewBuffer(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x
			mag := magnitude[idx]
			angle := direction[idx]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[idx-1]
				n2 = magnitude[idx+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[idx-width+1]
				n2 = magnitude[idx+width-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[idx-width]
				n2 = magnitude[idx+width]
			default:
				n1 = magnitude[idx-width-1]
				n2 = magnitude[idx+width+1]
			}

			if mag < n1 || mag < n2 {
				continue
			}
			switch {
			case mag > float64(high):
				mask.Pix[idx] = edgeStrong
			case mag > float64(low):
				mask.Pix[idx] = edgeWeak
			}
		}
	}

	traceHysteresis(mask)

	// Unreached weak pixels are not edges.
	for i, v := range mask.Pix {
		if v == edgeWeak {
			mask.Pix[i] = edgeNone
		}
	}
	return mask
}

// traceHysteresis promotes weak edge pixels that are 8-connected to a
// strong pixel, directly or through other promoted weak pixels.
//
// Uses an explicit stack rather than recursion so tracing depth is bounded
// by heap memory, not the call stack, on large masks.
func traceHysteresis(mask *Buffer) {
	width, height := mask.Width, mask.Height
	stack := make([]int, 0, 256)

	for idx, v := range mask.Pix {
		if v != edgeStrong {
			continue
		}
		stack = append(stack, idx)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			cx := cur % width
			cy := cur / width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := cx+dx, cy+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					n := ny*width + nx
					if mask.Pix[n] == edgeWeak {
						mask.Pix[n] = edgeStrong
						stack = append(stack, n)
					}
				}
			}
		}
	}
}
