package imaging

// Dilate morphologically thickens a binary edge mask.
//
// Each iteration writes the full 8-neighborhood of every currently-set
// pixel into a fresh buffer, so a single iteration grows regions by exactly
// one pixel and cannot cascade within itself. iterations=0 returns an
// identical copy of the input.
//
// Dilation closes the small gaps hysteresis leaves in a plan's border lines
// so the contour tracer sees one connected component per rectangle.
func Dilate(src *Buffer, iterations int) *Buffer {
	cur := src.Clone()
	for i := 0; i < iterations; i++ {
		next := cur.Clone()
		for y := 0; y < cur.Height; y++ {
			for x := 0; x < cur.Width; x++ {
				if cur.At(x, y) == 0 {
					continue
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if next.In(nx, ny) {
							next.Set(nx, ny, edgeStrong)
						}
					}
				}
			}
		}
		cur = next
	}
	return cur
}
