package server

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"

	"skinscout/internal/analysis"
	"skinscout/internal/db"
	"skinscout/internal/handlers"
	"skinscout/internal/handlers/api"
	"skinscout/internal/metrics"
)

// RegisterRoutes registers all application routes. database may be nil, in
// which case the history routes are not mounted.
func (s *Server) RegisterRoutes(classifier analysis.Classifier, database *db.DB) {
	deps := map[string]handlers.Pinger{}
	if database != nil {
		deps["database"] = database
	}

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(deps)
	analyzeHandler := api.NewAnalyzeHandler(classifier)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// JSON API
	s.App.Get("/api/health", api.Health)
	s.App.Post("/api/analyze", analyzeHandler.Analyze)

	if database != nil {
		analysisHandler := api.NewAnalysisHandler(database)
		s.App.Get("/api/analyses", analysisHandler.List)
		s.App.Get("/api/analyses/:id", analysisHandler.Get)
	}

	// Static front-end - must be last
	if info, err := os.Stat(s.Cfg.StaticDir); err == nil && info.IsDir() {
		s.App.Get("/*", static.New(s.Cfg.StaticDir))
	} else {
		log.Printf("Static directory %s not found, serving API only", s.Cfg.StaticDir)
	}
}
