package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vkrejcir/facetrace/internal/analyzer"
)

// Service is the analysis backend the handlers talk to.
type Service interface {
	Analyze(ctx context.Context, data []byte) (*analyzer.Report, error)
	AnalyzeBasic(ctx context.Context, data []byte) (*analyzer.Report, error)
	Status() analyzer.Status
}

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "error": message})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
