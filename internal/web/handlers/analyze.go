package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/imaging"
)

// AnalyzeHandler serves the image analysis endpoints.
type AnalyzeHandler struct {
	service    Service
	uploadsDir string
}

func NewAnalyzeHandler(service Service, uploadsDir string) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, uploadsDir: uploadsDir}
}

// Analyze handles a multipart image upload and runs the full pipeline.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if !facematch.AllowedFile(header.Filename) {
		respondError(w, http.StatusBadRequest, "unsupported file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	name := uuid.New().String()[:8] + "_" + sanitizeFilename(header.Filename)
	h.saveUpload(name, data)

	report, err := h.service.Analyze(r.Context(), data)
	if err != nil {
		h.respondAnalysisError(w, err)
		return
	}
	report.UploadedFile = name

	respondJSON(w, http.StatusOK, report)
}

func (h *AnalyzeHandler) respondAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, facematch.ErrNoFace):
		respondError(w, http.StatusBadRequest, "no face detected in image")
	case errors.Is(err, imaging.ErrDecode):
		respondError(w, http.StatusBadRequest, "cannot decode image")
	default:
		log.Printf("analysis failed: %v", err)
		respondError(w, http.StatusInternalServerError, "analysis failed")
	}
}

// saveUpload keeps a copy of the analyzed image for the status endpoint
// and manual review. Failures are logged, never fatal.
func (h *AnalyzeHandler) saveUpload(name string, data []byte) {
	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		log.Printf("warning: failed to create uploads dir: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(h.uploadsDir, name), data, 0o644); err != nil {
		log.Printf("warning: failed to save upload %s: %v", sanitizeForLog(name), err)
	}
}

// sanitizeFilename strips path components and characters that have no
// business in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
