package main

import (
	"fmt"
	"log"
	"time"

	"parakh/internal/auth"
	"parakh/internal/config"
	"parakh/internal/extractor/docparse"
	"parakh/internal/handler"
	"parakh/internal/recon"
	"parakh/internal/registry/appyflow"
	"parakh/internal/repository/postgres"
	"parakh/internal/router"
	"parakh/internal/service"
	s3storage "parakh/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	reconRepo := postgres.NewReconciliationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize collaborator clients and the engine
	extractorClient := docparse.NewClient(&cfg.Extractor)
	registryClient := appyflow.NewClient(&cfg.Registry)
	policy := recon.Policy{
		AmountTolerance: cfg.Recon.AmountTolerance,
		UdyamSuffixLen:  cfg.Recon.UdyamSuffixLen,
		HSNPrefixLen:    cfg.Recon.HSNPrefixLen,
	}
	engine := recon.NewEngine(registryClient, policy, time.Duration(cfg.Registry.TimeoutSecs)*time.Second)

	// Initialize services
	reconSvc := service.NewReconciliationService(extractorClient, engine, reconRepo, s3Client, &cfg.S3)

	// Initialize handlers
	reconH := handler.NewReconciliationHandler(reconSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	validator := auth.NewTokenValidator(cfg.JWT)
	r := router.Setup(validator, cfg.CORS.AllowedOrigins, reconH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
