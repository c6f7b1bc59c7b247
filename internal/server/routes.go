package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attrition/internal/encoder"
	"attrition/internal/handlers"
	"attrition/internal/metrics"
)

// Model scores feature records and reports whether it was loaded.
type Model interface {
	handlers.Predictor
	handlers.ModelChecker
}

// Dependencies are the long-lived objects the routes serve from.
type Dependencies struct {
	Table    *encoder.Table
	Model    Model
	Recorder *metrics.Recorder
	Database handlers.Pinger // nil when no database is configured
	Gatherer prometheus.Gatherer
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Dependencies) {
	assessmentHandler := handlers.NewAssessmentHandler(deps.Table, deps.Model, deps.Recorder, s.Cfg)
	probeHandler := handlers.NewProbeHandler(deps.Model, deps.Database)

	// Form
	s.App.Get("/", assessmentHandler.Index)
	s.App.Post("/analyze", assessmentHandler.Analyze)

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Metrics
	if deps.Gatherer != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
}
