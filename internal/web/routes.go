package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/vkrejcir/facetrace/internal/web/handlers"
)

func (s *Server) setupRoutes(service handlers.Service, uploadsDir string) {
	analyzeHandler := handlers.NewAnalyzeHandler(service, uploadsDir)
	statusHandler := handlers.NewStatusHandler(service)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", analyzeHandler.Analyze)
		r.Post("/webcam", analyzeHandler.Webcam)
		r.Get("/status", statusHandler.Status)
	})
}
