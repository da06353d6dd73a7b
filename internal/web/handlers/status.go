package handlers

import (
	"net/http"
)

// StatusHandler reports service state.
type StatusHandler struct {
	service Service
}

func NewStatusHandler(service Service) *StatusHandler {
	return &StatusHandler{service: service}
}

type statusResponse struct {
	State      string          `json:"status"`
	KnownFaces int             `json:"known_faces"`
	Uploads    int             `json:"uploads"`
	Features   map[string]bool `json:"features"`
	Gemini     geminiStatus    `json:"gemini"`
}

type geminiStatus struct {
	Enabled      bool     `json:"enabled"`
	Model        string   `json:"model,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// aiCapabilities lists what narrative analysis adds on top of the base
// pipeline. Reported only while a provider is configured.
var aiCapabilities = []string{
	"Advanced face analysis",
	"Enhanced OSINT search suggestions",
	"Intelligent threat assessment",
	"Contextual image understanding",
	"Privacy risk evaluation",
}

// Status returns gallery size, stored upload count and AI availability.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	s := h.service.Status()

	capabilities := []string{}
	if s.AIEnabled {
		capabilities = aiCapabilities
	}

	respondJSON(w, http.StatusOK, statusResponse{
		State:      "active",
		KnownFaces: s.KnownFaces,
		Uploads:    s.Uploads,
		Features: map[string]bool{
			"face_detection":     true,
			"face_matching":      true,
			"osint_lookup":       true,
			"threat_assessment":  true,
			"gemini_integration": s.AIEnabled,
			"enhanced_analysis":  s.AIEnabled,
			"advanced_osint":     s.AIEnabled,
		},
		Gemini: geminiStatus{
			Enabled:      s.AIEnabled,
			Model:        s.Model,
			Capabilities: capabilities,
		},
	})
}
