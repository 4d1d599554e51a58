//go:build cgo && linux

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/rnowosielski/dom-a-thor/internal/detection"
)

// ExtractCaptions runs OCR over the margin strips around the selected plan
// rectangle and returns the text found in each non-empty strip.
//
// The source image must be the same (scaled) canvas the rectangle was
// selected on, so the candidate coordinates line up. Strips that produce no
// text are omitted from the result.
func ExtractCaptions(img image.Image, rect *detection.Candidate, language string) ([]Caption, error) {
	if language == "" {
		language = "eng"
	}

	captions := make([]Caption, 0)
	for _, region := range marginRegions(img.Bounds(), rect) {
		text, confidence, err := recognizeRegion(img, region, language)
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}
		captions = append(captions, Caption{
			Text:       text,
			Confidence: confidence,
			Region:     region,
		})
	}
	return captions, nil
}

// recognizeRegion crops one strip to a temporary PNG (tesseract wants a
// file path) and runs recognition on it.
func recognizeRegion(img image.Image, region image.Rectangle, language string) (string, float64, error) {
	cropped := imaging.Crop(img, region)

	tmpFile, err := os.CreateTemp("", "caption-*.png")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, cropped); err != nil {
		tmpFile.Close()
		return "", 0, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("OCR failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, nil
	}

	// Mean word confidence; falls back to zero when boxes are missing.
	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		for _, box := range boxes {
			confidence += float64(box.Confidence) / 100
		}
		confidence /= float64(len(boxes))
	}
	return text, confidence, nil
}
