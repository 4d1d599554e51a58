package server

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/rnowosielski/dom-a-thor/internal/imaging"
	"github.com/rnowosielski/dom-a-thor/internal/pipeline"
)

// ExtractRequest is the JSON body of POST /v1/extract.
//
// All tuning fields are optional; zero values take the pipeline defaults.
type ExtractRequest struct {
	// ImageBase64 is the standard-base64 encoded source image.
	ImageBase64 string `json:"image_base64"`

	pipeline.Config

	// MirrorX and MirrorY flip the cropped result horizontally and/or
	// vertically before encoding. Setting both rotates the plan 180°.
	MirrorX bool `json:"mirror_x,omitempty"`
	MirrorY bool `json:"mirror_y,omitempty"`

	// Format selects the output encoding: "png" (default), "jpeg" or
	// "webp".
	Format string `json:"format,omitempty"`
}

// ExtractResponse is the JSON body of a successful extraction.
type ExtractResponse struct {
	// ImageBase64 is the processed image encoded as base64.
	ImageBase64 string `json:"image_base64"`

	// MimeType identifies the output encoding, e.g. "image/png".
	MimeType string `json:"mime_type"`

	// Width and Height are the output dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Cropped reports whether a plan rectangle was found. When false the
	// returned image is the scaled source, unmodified apart from
	// mirroring.
	Cropped bool `json:"cropped"`
}

// apiError is the JSON error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	switch req.Format {
	case "", "png", "jpeg", "jpg", "webp":
	default:
		writeError(w, http.StatusBadRequest, "unsupported output format: "+req.Format)
		return
	}

	src, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_base64 is not valid base64: "+err.Error())
		return
	}

	result, err := pipeline.Extract(src, req.Config)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out := imaging.Mirror(result.Image, req.MirrorX, req.MirrorY)
	data, mimeType, err := pipeline.Encode(out, req.Format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &ExtractResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    mimeType,
		Width:       result.Width,
		Height:      result.Height,
		Cropped:     result.Cropped(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	var e apiError
	e.Error.Code = status
	e.Error.Message = message
	writeJSON(w, status, &e)
}
