package imaging

// Blur smooths a grayscale Buffer with a fixed 3x3 Gaussian-like kernel:
//
//	1 2 1
//	2 4 2
//	1 2 1
//
// normalized by 16. Applied by direct convolution over interior pixels.
//
// The one-pixel border of the output is left at zero intensity: there is
// no mirroring or clamping at the edges. This is a known artifact of the
// algorithm's output contract and must not be "fixed": the edge detector
// downstream excludes the border anyway, and changing the border policy
// would shift every derived mask.
func Blur(src *Buffer) *Buffer {
	kernel := [3][3]int{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}

	out := NewBuffer(src.Width, src.Height)
	for y := 1; y < src.Height-1; y++ {
		for x := 1; x < src.Width-1; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += int(src.At(x+kx, y+ky)) * kernel[ky+1][kx+1]
				}
			}
			out.Set(x, y, uint8(sum/16))
		}
	}
	return out
}
