// Package server exposes the plan-extraction pipeline over a small JSON
// HTTP API so the browser-extension front end can hand a photographed plan
// to the pipeline and get the cropped plan back.
//
// The API surface is intentionally tiny:
//
//	POST /v1/extract  run the pipeline on a base64-encoded image
//	GET  /healthz     liveness probe
//
// Errors are returned as a JSON envelope {"error": {"code", "message"}}.
// An undecodable source image maps to 422; malformed requests map to 400;
// everything else that fails maps to 500. Pipeline-internal failures never
// surface: they degrade to the uncropped image instead.
package server

import (
	"log"
	"net/http"
	"time"
)

// Timeouts for the embedded http.Server. Registry photographs are a few MB
// at most, so generous but bounded limits are fine.
const (
	readTimeout  = 30 * time.Second
	writeTimeout = 60 * time.Second

	// maxBodyBytes caps the request body; base64 inflates images by
	// one third, so this allows sources up to roughly 24 MB raw.
	maxBodyBytes = 32 << 20
)

// Server routes HTTP requests to the extraction pipeline.
type Server struct {
	mux *http.ServeMux
}

// New creates a Server with all routes registered.
func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.mux.HandleFunc("/v1/extract", s.handleExtract)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the server's root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run blocks serving HTTP on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	log.Printf("listening on %s", addr)
	return srv.ListenAndServe()
}
