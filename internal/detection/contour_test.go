package detection

import (
	"testing"

	"github.com/rnowosielski/dom-a-thor/internal/imaging"
)

// setBlock sets a solid w x h block of mask pixels at (x, y).
func setBlock(mask *imaging.Buffer, x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			mask.Set(x+dx, y+dy, 255)
		}
	}
}

func TestTraceContours_SeparateComponents(t *testing.T) {
	mask := imaging.NewBuffer(40, 40)
	setBlock(mask, 2, 2, 4, 4)    // 16 pixels
	setBlock(mask, 20, 20, 5, 3)  // 15 pixels
	setBlock(mask, 30, 5, 2, 6)   // 12 pixels

	contours := TraceContours(mask)

	if len(contours) != 3 {
		t.Fatalf("contour count: got %d, want 3", len(contours))
	}
	wantSizes := []int{16, 15, 12}
	sizes := map[int]bool{}
	for _, c := range contours {
		sizes[len(c)] = true
	}
	for _, w := range wantSizes {
		if !sizes[w] {
			t.Errorf("missing contour of size %d", w)
		}
	}
}

func TestTraceContours_NoiseFilter(t *testing.T) {
	mask := imaging.NewBuffer(30, 30)
	setBlock(mask, 2, 2, 3, 3)   // 9 pixels: below the 10-pixel floor
	setBlock(mask, 15, 15, 5, 2) // 10 pixels: exactly at the floor

	contours := TraceContours(mask)

	if len(contours) != 1 {
		t.Fatalf("contour count: got %d, want 1 (9-pixel blob is noise)", len(contours))
	}
	if len(contours[0]) != 10 {
		t.Errorf("kept contour size: got %d, want 10", len(contours[0]))
	}
}

func TestTraceContours_DiagonalConnectivity(t *testing.T) {
	mask := imaging.NewBuffer(20, 20)
	for i := 0; i < 12; i++ {
		mask.Set(2+i, 2+i, 255)
	}

	contours := TraceContours(mask)

	if len(contours) != 1 {
		t.Fatalf("diagonal chain should be one 8-connected contour, got %d", len(contours))
	}
	if len(contours[0]) != 12 {
		t.Errorf("contour size: got %d, want 12", len(contours[0]))
	}
}

func TestTraceContours_NoPixelInTwoContours(t *testing.T) {
	mask := imaging.NewBuffer(50, 50)
	setBlock(mask, 5, 5, 6, 6)
	setBlock(mask, 30, 30, 8, 4)

	contours := TraceContours(mask)

	seen := map[Point]bool{}
	for _, contour := range contours {
		for _, p := range contour {
			if seen[p] {
				t.Fatalf("pixel %v appears in two contours", p)
			}
			seen[p] = true
		}
	}
}

func TestTraceContours_EmptyMask(t *testing.T) {
	mask := imaging.NewBuffer(10, 10)

	if contours := TraceContours(mask); len(contours) != 0 {
		t.Errorf("empty mask: got %d contours, want 0", len(contours))
	}
}

func TestTraceContours_DeterministicDiscoveryOrder(t *testing.T) {
	mask := imaging.NewBuffer(40, 40)
	setBlock(mask, 25, 2, 4, 4) // earlier row: discovered first
	setBlock(mask, 2, 20, 4, 4)

	contours := TraceContours(mask)

	if len(contours) != 2 {
		t.Fatalf("contour count: got %d, want 2", len(contours))
	}
	if contours[0][0] != (Point{X: 25, Y: 2}) {
		t.Errorf("first contour starts at %v, want row-major first pixel (25,2)", contours[0][0])
	}
}
