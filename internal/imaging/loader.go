package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// MaxDimension caps the longest side of a decoded source image. Larger
// images are downscaled before any pixel stage runs; the cap is part of the
// pipeline contract, not user-configurable.
const MaxDimension = 1400

// fetchTimeout bounds how long a URL fetch may take end to end.
const fetchTimeout = 30 * time.Second

// Decode parses an encoded raster image from a byte slice.
//
// Supported formats are PNG, JPEG, GIF, WebP, BMP, and TIFF. The returned
// image has not been downscaled; callers that feed the pipeline should pass
// it through Downscale first.
//
// A decode failure here is the only error the extraction pipeline ever
// propagates to its caller.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadFile reads and decodes an image from disk.
func LoadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Decode(data)
}

// FetchURL downloads and decodes an image from an http(s) URL.
//
// The registry pages that feed this tool serve plan photographs over plain
// HTTP links, so the fetch deliberately accepts any 200 response with a
// decodable body regardless of Content-Type.
func FetchURL(url string) (image.Image, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return Decode(data)
}

// Downscale resizes img so that its longest side is at most MaxDimension,
// preserving aspect ratio. Images already within the cap are returned
// unchanged; the function never upscales.
//
// Uses Lanczos resampling, which keeps the thin border lines of scanned
// plans intact better than box filtering.
func Downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}
	if w >= h {
		return imaging.Resize(img, MaxDimension, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, MaxDimension, imaging.Lanczos)
}
