package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"skinscout/internal/analysis"
	"skinscout/internal/config"
	"skinscout/internal/db"
	"skinscout/internal/jobs"
	"skinscout/internal/metrics"
	"skinscout/internal/remote"
	"skinscout/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Classification engine
	engine, err := config.LoadEngine(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog %s: %v", cfg.CatalogFile, err)
	}

	// Optional analysis history
	var database *db.DB
	if cfg.HistoryConfigured() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	} else {
		log.Println("Analysis history is disabled. Set DATABASE_URL to enable.")
	}

	metrics.Init(database, engine)

	classifier := buildClassifier(ctx, cfg, engine)

	srv := server.New(cfg)
	srv.RegisterRoutes(classifier, database)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// buildClassifier returns the local engine, fronted by the model service
// when one is configured. The model service is skipped while its probe
// reports it down.
func buildClassifier(ctx context.Context, cfg *config.Config, engine *analysis.Engine) analysis.Classifier {
	var classifier analysis.Classifier = analysis.Local{Engine: engine}

	if cfg.UsesModelService() {
		client, err := remote.New(cfg.ModelServiceURL,
			remote.WithTimeout(cfg.ModelTimeout),
			remote.WithCacheSize(cfg.ModelCacheSize),
		)
		if err != nil {
			log.Printf("Warning: model service disabled: %v", err)
		} else {
			probe := jobs.NewModelProbe(client, cfg.ModelProbeInterval)
			go probe.Start(ctx)

			classifier = &analysis.Fallback{
				Primary:    client,
				Secondary:  classifier,
				Available:  probe.Healthy,
				OnFallback: func(error) { metrics.RecordRemoteFallback() },
			}
			log.Printf("Using model service at %s with local fallback", cfg.ModelServiceURL)
		}
	}

	if cfg.SimulatedLatency > 0 {
		classifier = analysis.Delayed{Next: classifier, Delay: cfg.SimulatedLatency}
		log.Printf("Simulating %v classification latency", cfg.SimulatedLatency)
	}

	return classifier
}
