package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"attrition/internal/config"
	"attrition/internal/db"
	"attrition/internal/encoder"
	"attrition/internal/handlers"
	"attrition/internal/metrics"
	"attrition/internal/predictor"
	"attrition/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Load optional YAML config
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	table, err := yamlCfg.FrequencyTable()
	if err != nil {
		log.Fatalf("Failed to build frequency table: %v", err)
	}

	// Load the model. A missing, broken or mismatched artifact keeps the form
	// up but fails readiness and every assessment.
	model := predictor.Load(cfg.ModelPath, encoder.Schema)
	if err := model.Ready(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Initialize database, only when configured
	var (
		store    metrics.OutcomeStore
		database handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()

		if err := pg.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		store = pg
		database = pg
	} else {
		log.Println("DATABASE_URL not set, outcome counts are kept in memory")
	}

	recorder := metrics.New(prometheus.DefaultRegisterer, store)

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Dependencies{
		Table:    table,
		Model:    model,
		Recorder: recorder,
		Database: database,
		Gatherer: prometheus.DefaultGatherer,
	})

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
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
