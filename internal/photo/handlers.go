package photo

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes an error response as {"error": message}
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// captureError maps a capture failure to a status code and a user-facing message
func captureError(err error) (int, string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, "Photo is too large. Maximum size is 20MB."
	}
	return http.StatusBadRequest, "Could not read the photo. Please try again."
}

// handleIndex serves the idle page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, s.service.Analyze(r.Context(), Photo{}))
}

// handleCapture analyzes the posted photo and serves the page with the result
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	p, err := FromRequest(r, MaxUploadSize)
	if err != nil {
		slog.Error("Error reading captured photo", "error", err)
		code, message := captureError(err)
		corsError(w, message, code)
		return
	}

	s.writePage(w, s.service.Analyze(r.Context(), p))
}

// handleAPIAnalyze analyzes the posted photo and returns the view as JSON
func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	p, err := FromRequest(r, MaxUploadSize)
	if err != nil {
		slog.Error("Error reading captured photo", "error", err)
		code, message := captureError(err)
		jsonError(w, message, code)
		return
	}

	view := s.service.Analyze(r.Context(), p)

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writePage renders the page template for view
func (s *Server) writePage(w http.ResponseWriter, view View) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPage(view)); err != nil {
		slog.Error("Error rendering page", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
