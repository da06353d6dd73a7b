package handlers

import (
	"crypto/md5" //nolint:gosec // snapshot filenames, not security
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vkrejcir/facetrace/internal/analyzer"
	"github.com/vkrejcir/facetrace/internal/constants"
)

type webcamRequest struct {
	Image string `json:"image"`
}

// Webcam handles base64 snapshots from the browser camera. It runs only
// detection and matching so the response stays fast enough for a live
// preview loop.
func (h *AnalyzeHandler) Webcam(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)

	var req webcamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		respondError(w, http.StatusBadRequest, "no image data provided")
		return
	}

	data, err := decodeDataURL(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image data")
		return
	}

	sum := md5.Sum(data) //nolint:gosec
	name := fmt.Sprintf("webcam_%s.jpg", hex.EncodeToString(sum[:])[:8])
	h.saveUpload(name, data)

	report, err := h.service.AnalyzeBasic(r.Context(), data)
	if err != nil {
		h.respondAnalysisError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, webcamResponse{Report: report, WebcamFile: name})
}

type webcamResponse struct {
	*analyzer.Report
	WebcamFile string `json:"webcam_file"`
}

// decodeDataURL accepts both a plain base64 payload and the
// "data:image/jpeg;base64,..." form browsers produce.
func decodeDataURL(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}
