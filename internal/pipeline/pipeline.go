// Package pipeline composes the plan-extraction stages into a single
// synchronous run with degrade-to-original fallback semantics.
//
// The stage chain is fixed: decode → downscale → grayscale → blur → edge
// detection → dilation → contour tracing → rectangle selection → crop.
// Control flows strictly forward; there is no retry loop. Any failure after
// a successful decode degrades to returning the scaled, uncropped image, so
// callers only ever observe total success or a decode error.
//
// Every invocation allocates its own buffers and shares no mutable state,
// so concurrent invocations on independent inputs are safe.
package pipeline

import (
	"fmt"
	"image"
	"log"
	"os"

	disimaging "github.com/disintegration/imaging"

	"github.com/rnowosielski/dom-a-thor/internal/detection"
	"github.com/rnowosielski/dom-a-thor/internal/imaging"
)

// Default configuration values, applied by withDefaults for any field left
// at zero or negative.
const (
	DefaultEdgeLowThreshold   = 60
	DefaultEdgeHighThreshold  = 140
	DefaultDilationIterations = 1
	DefaultMinAreaPercent     = 20
	DefaultInsetMarginPx      = 10
)

var debugEnabled = os.Getenv("DOM_A_THOR_LOG_LEVEL") == "debug"

// Config controls one pipeline invocation. It is read-only for the
// duration of the run; construct it once and pass by value.
type Config struct {
	// EdgeLowThreshold is the weak-edge gradient cutoff (0-255).
	EdgeLowThreshold int `json:"edge_low_threshold"`

	// EdgeHighThreshold is the strong-edge gradient cutoff (0-255).
	EdgeHighThreshold int `json:"edge_high_threshold"`

	// DilationIterations is the number of gap-closing dilation passes.
	// Zero means unset and takes the default of 1.
	DilationIterations int `json:"dilation_iterations"`

	// MinAreaPercent is the minimum candidate rectangle area as a
	// percentage of the (scaled) image area.
	MinAreaPercent float64 `json:"min_area_percent"`

	// InsetMarginPx trims this many pixels inward from each detected
	// rectangle edge before cropping, cutting off the border line itself.
	InsetMarginPx int `json:"inset_margin_px"`

	// Debug, when set, attaches an annotated overlay of all contour
	// bounding boxes and the winning rectangle to the Result.
	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		EdgeLowThreshold:   DefaultEdgeLowThreshold,
		EdgeHighThreshold:  DefaultEdgeHighThreshold,
		DilationIterations: DefaultDilationIterations,
		MinAreaPercent:     DefaultMinAreaPercent,
		InsetMarginPx:      DefaultInsetMarginPx,
	}
}

// withDefaults fills unset (zero or negative) fields with defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EdgeLowThreshold <= 0 {
		c.EdgeLowThreshold = d.EdgeLowThreshold
	}
	if c.EdgeHighThreshold <= 0 {
		c.EdgeHighThreshold = d.EdgeHighThreshold
	}
	if c.DilationIterations <= 0 {
		c.DilationIterations = d.DilationIterations
	}
	if c.MinAreaPercent <= 0 {
		c.MinAreaPercent = d.MinAreaPercent
	}
	if c.InsetMarginPx <= 0 {
		c.InsetMarginPx = d.InsetMarginPx
	}
	return c
}

// Result is the only value the pipeline exposes to callers.
type Result struct {
	// Image is the cropped plan, or the scaled source image when no
	// rectangle qualified.
	Image image.Image

	// Source is the scaled but uncropped canvas. Rect coordinates refer
	// to this image; caption OCR reads its margins.
	Source image.Image

	// Width and Height are the dimensions of Image in pixels.
	Width  int
	Height int

	// Rect is the selected candidate in scaled-image coordinates, nil
	// when the run fell back to the uncropped image.
	Rect *detection.Candidate

	// Debug is the annotated contour overlay, present only when
	// Config.Debug was set and the stages ran to completion.
	Debug *image.RGBA
}

// Cropped reports whether a plan rectangle was found and cropped.
func (r *Result) Cropped() bool {
	return r.Rect != nil
}

// Extract decodes an encoded raster image and runs the extraction
// pipeline.
//
// The returned error is non-nil only when the source bytes cannot be
// decoded; every later failure degrades to the scaled, uncropped image
// inside a valid Result.
func Extract(src []byte, cfg Config) (*Result, error) {
	img, err := imaging.Decode(src)
	if err != nil {
		return nil, err
	}
	return Process(img, cfg), nil
}

// Process runs the extraction stages on an already-decoded image.
//
// Process never fails: if any stage panics or no rectangle qualifies, the
// result carries the downscaled source image unchanged.
func Process(img image.Image, cfg Config) *Result {
	cfg = cfg.withDefaults()

	scaled := imaging.Downscale(img)
	bounds := scaled.Bounds()
	result := &Result{
		Image:  scaled,
		Source: scaled,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	cropped, rect, overlay, err := runStages(scaled, cfg)
	if err != nil {
		log.Printf("plan extraction degraded to uncropped image: %v", err)
		return result
	}
	result.Debug = overlay
	if rect == nil {
		if debugEnabled {
			log.Printf("no qualifying rectangle in %dx%d image, returning uncropped", result.Width, result.Height)
		}
		return result
	}

	result.Image = cropped
	result.Width = cropped.Bounds().Dx()
	result.Height = cropped.Bounds().Dy()
	result.Rect = rect
	return result
}

// runStages executes grayscale through crop on the scaled canvas. A nil
// candidate with nil error means no rectangle qualified; a non-nil error
// means a stage failed and the caller must fall back.
func runStages(scaled image.Image, cfg Config) (cropped image.Image, rect *detection.Candidate, overlay *image.RGBA, err error) {
	// Stage failures must never escape to the pipeline caller.
	defer func() {
		if r := recover(); r != nil {
			cropped, rect, overlay = nil, nil, nil
			err = fmt.Errorf("stage failure: %v", r)
		}
	}()

	bounds := scaled.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil, nil, fmt.Errorf("empty canvas %dx%d", width, height)
	}

	gray := imaging.Grayscale(scaled)
	blurred := imaging.Blur(gray)
	edges := imaging.DetectEdges(blurred, cfg.EdgeLowThreshold, cfg.EdgeHighThreshold)
	dilated := imaging.Dilate(edges, cfg.DilationIterations)
	contours := detection.TraceContours(dilated)
	rect = detection.SelectRectangle(contours, width, height, cfg.MinAreaPercent)

	if cfg.Debug {
		overlay = detection.Annotate(scaled, contours, rect)
	}
	if rect == nil {
		return nil, nil, overlay, nil
	}

	cropped = cropToRect(scaled, rect, cfg.InsetMarginPx)
	return cropped, rect, overlay, nil
}

// cropToRect applies the inset margin and crops the canvas to the selected
// rectangle.
//
// The inset is clamped to at most a quarter of the rectangle's width and
// height per axis so an oversized margin can never produce a non-positive
// crop. The final crop rect is additionally clamped to the canvas bounds.
func cropToRect(canvas image.Image, rect *detection.Candidate, insetPx int) image.Image {
	insetX := insetPx
	if max := rect.Width / 4; insetX > max {
		insetX = max
	}
	insetY := insetPx
	if max := rect.Height / 4; insetY > max {
		insetY = max
	}

	bounds := canvas.Bounds()
	x1 := clampInt(rect.X+insetX, bounds.Min.X, bounds.Max.X)
	y1 := clampInt(rect.Y+insetY, bounds.Min.Y, bounds.Max.Y)
	x2 := clampInt(rect.X+rect.Width-insetX, bounds.Min.X, bounds.Max.X)
	y2 := clampInt(rect.Y+rect.Height-insetY, bounds.Min.Y, bounds.Max.Y)

	return disimaging.Crop(canvas, image.Rect(x1, y1, x2, y2))
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
