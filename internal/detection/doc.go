// Package detection extracts the plan rectangle from a binary edge mask.
//
// The package implements the back half of the extraction pipeline: contour
// tracing over the dilated edge mask, then scoring each contour's bounding
// box to pick the one most likely to be the plan's inner rectangle.
//
// # Contours
//
// A contour is a maximal 8-connected component of set mask pixels. Tracing
// uses a stack-based flood fill with a visited mask, so no pixel ever
// belongs to two contours and call depth stays bounded on large images.
//
// # Candidate Scoring
//
// Each surviving contour yields a candidate rectangle from its axis-aligned
// bounding box plus a coarse orientation estimate. Candidates are rejected
// when they are too small relative to the image or when they hug the image
// border (plan rectangles are assumed interior; border-touching boxes are
// almost always the photo's own frame). The rest are scored by area times
// an axis-alignment factor; closest-to-axis-aligned large boxes win.
//
// The orientation estimate is deliberately coarse: the angle between the
// first and last recorded contour point, not a minimum-area-rectangle fit.
// It only feeds the alignment factor, never a rotated crop.
package detection
