package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// planPNG builds a black canvas with a centered white rectangle and
// returns it base64-encoded.
func planPNG(t *testing.T, width, height, rectW, rectH int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	x0 := (width - rectW) / 2
	y0 := (height - rectH) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.Color(color.Black)
			if x >= x0 && x < x0+rectW && y >= y0 && y < y0+rectH {
				c = color.White
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postExtract(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	New().Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleExtract(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"image_base64": planPNG(t, 400, 320, 240, 160),
	})

	rec := postExtract(t, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Cropped {
		t.Error("expected the centered rectangle to be cropped")
	}
	if resp.MimeType != "image/png" {
		t.Errorf("mime: got %s, want image/png", resp.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		t.Fatalf("response image is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("response image is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != resp.Width || img.Bounds().Dy() != resp.Height {
		t.Errorf("reported %dx%d but payload is %dx%d",
			resp.Width, resp.Height, img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHandleExtract_MirrorKeepsDimensions(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"image_base64": planPNG(t, 400, 320, 240, 160),
		"mirror_x":     true,
		"mirror_y":     true,
	})

	rec := postExtract(t, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Width == 0 || resp.Height == 0 {
		t.Error("mirrored result has degenerate dimensions")
	}
}

func TestHandleExtract_FallbackUncropped(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"image_base64": planPNG(t, 200, 150, 0, 0), // all black
	})

	rec := postExtract(t, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Cropped {
		t.Error("all-black image must not report a crop")
	}
	if resp.Width != 200 || resp.Height != 150 {
		t.Errorf("fallback dimensions: got %dx%d, want 200x150", resp.Width, resp.Height)
	}
}

func TestHandleExtract_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid JSON", "{not json", http.StatusBadRequest},
		{"bad base64", `{"image_base64":"!!!"}`, http.StatusBadRequest},
		{"undecodable image", `{"image_base64":"` + base64.StdEncoding.EncodeToString([]byte("junk")) + `"}`, http.StatusUnprocessableEntity},
		{"bad format", `{"image_base64":"","format":"tiff"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postExtract(t, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}

			var e apiError
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("error envelope is not JSON: %v", err)
			}
			if e.Error.Code != tt.wantStatus || e.Error.Message == "" {
				t.Errorf("envelope: got %+v", e)
			}
		})
	}
}

func TestHandleExtract_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/extract", nil)
	rec := httptest.NewRecorder()
	New().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	New().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf(`status field: got %q, want "ok"`, body["status"])
	}
}
