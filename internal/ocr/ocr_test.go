package ocr

import (
	"image"
	"testing"

	"github.com/rnowosielski/dom-a-thor/internal/detection"
)

func TestMarginRegions_InteriorRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	rect := &detection.Candidate{X: 20, Y: 15, Width: 50, Height: 40}

	regions := marginRegions(bounds, rect)

	if len(regions) != 4 {
		t.Fatalf("region count: got %d, want 4", len(regions))
	}

	inner := image.Rect(20, 15, 70, 55)
	total := 0
	for _, r := range regions {
		if r.Empty() {
			t.Errorf("empty region %v returned", r)
		}
		if r.Overlaps(inner) {
			t.Errorf("region %v overlaps the plan rectangle", r)
		}
		total += r.Dx() * r.Dy()
	}

	// The four strips plus the inner rectangle tile the canvas exactly.
	want := bounds.Dx()*bounds.Dy() - inner.Dx()*inner.Dy()
	if total != want {
		t.Errorf("covered margin area: got %d, want %d", total, want)
	}
}

func TestMarginRegions_CornerRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	rect := &detection.Candidate{X: 0, Y: 0, Width: 60, Height: 80}

	regions := marginRegions(bounds, rect)

	// Only the right-hand strip remains.
	if len(regions) != 1 {
		t.Fatalf("region count: got %d, want 1", len(regions))
	}
	if regions[0] != image.Rect(60, 0, 100, 80) {
		t.Errorf("region: got %v, want (60,0)-(100,80)", regions[0])
	}
}

func TestMarginRegions_RectOutsideBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 50, 50)
	rect := &detection.Candidate{X: 200, Y: 200, Width: 30, Height: 30}

	if regions := marginRegions(bounds, rect); regions != nil {
		t.Errorf("disjoint rectangle: got %v, want nil", regions)
	}
}

func TestMarginRegions_FullCanvasRect(t *testing.T) {
	bounds := image.Rect(0, 0, 40, 30)
	rect := &detection.Candidate{X: 0, Y: 0, Width: 40, Height: 30}

	if regions := marginRegions(bounds, rect); len(regions) != 0 {
		t.Errorf("full-canvas rectangle leaves no margins, got %v", regions)
	}
}
