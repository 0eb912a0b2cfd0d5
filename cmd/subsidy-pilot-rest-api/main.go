// cmd/subsidy-pilot-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "subsidy_pilot_service/internal/api/rest/v1"
	"subsidy_pilot_service/internal/app"
	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/infrastructure/auth"
	"subsidy_pilot_service/internal/infrastructure/connector"
	infraextraction "subsidy_pilot_service/internal/infrastructure/extraction"
	"subsidy_pilot_service/internal/infrastructure/persistence"
	infrascanning "subsidy_pilot_service/internal/infrastructure/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	tokenIssuer *auth.TokenIssuer
	services    *appServices
}

type appServices struct {
	farm             farms.FarmService
	documentUpload   documents.DocumentUploadService
	documentMetadata documents.DocumentMetadataService
	documentDownload documents.DocumentDownloadService
	extraction       extraction.ExtractionService
	review           reviews.ReviewService
	subsidy          subsidies.SubsidyService
	application      subsidies.ApplicationService
	export           training.ExportService
	audit            audit.AuditService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	farmRepo, err := persistence.NewGormFarmRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create farm repository: %w", err)
	}

	documentRepo, err := persistence.NewGormDocumentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
	}

	subsidyRepo, err := persistence.NewGormSubsidyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subsidy repository: %w", err)
	}

	applicationRepo, err := persistence.NewGormApplicationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create application repository: %w", err)
	}

	extractionRepo, err := persistence.NewGormExtractionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction repository: %w", err)
	}

	reviewRepo, err := persistence.NewGormReviewRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create review repository: %w", err)
	}

	trainingRepo, err := persistence.NewGormTrainingJobRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create training job repository: %w", err)
	}

	deploymentRepo, err := persistence.NewGormDeploymentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create deployment repository: %w", err)
	}

	auditRepo, err := persistence.NewGormAuditEventRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit repository: %w", err)
	}

	// Initialize blob storage
	ctx := context.Background()
	storageConnector, err := connector.NewAzureBlobConnector(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob connector: %w", err)
	}
	log.Info("Azure blob connector initialized successfully")

	// Initialize token issuer
	tokenIssuer, err := auth.NewTokenIssuer(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	// Initialize services
	auditService, err := app.NewAuditService(auditRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	scanBackend, err := initializeScanBackend(&cfg.Scanner, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scan backend: %w", err)
	}

	scanService, err := app.NewScanService(&cfg.Scanner, scanBackend, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan service: %w", err)
	}

	fieldExtractor, err := infraextraction.NewGenAIExtractor(ctx, &cfg.Extractor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create field extractor: %w", err)
	}

	var ocrProcessor extraction.OCRProcessor
	if cfg.Extractor.OCREnabled {
		ocrProcessor, err = infraextraction.NewGosseractOCR(&cfg.Extractor, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create OCR processor: %w", err)
		}
	}

	documentUploadService, err := app.NewDocumentUploadService(storageConnector, documentRepo, scanService, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document upload service: %w", err)
	}

	documentMetadataService, err := app.NewDocumentMetadataService(documentRepo, storageConnector, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document metadata service: %w", err)
	}

	documentDownloadService, err := app.NewDocumentDownloadService(storageConnector, documentRepo, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document download service: %w", err)
	}

	extractionService, err := app.NewExtractionService(&cfg.Extractor, extractionRepo, documentRepo, storageConnector, ocrProcessor, fieldExtractor, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction service: %w", err)
	}

	reviewService, err := app.NewReviewService(reviewRepo, extractionRepo, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	farmService, err := app.NewFarmService(farmRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create farm service: %w", err)
	}

	subsidyService, err := app.NewSubsidyService(subsidyRepo, farmRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subsidy service: %w", err)
	}

	applicationService, err := app.NewApplicationService(applicationRepo, subsidyRepo, farmRepo, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create application service: %w", err)
	}

	exportService, err := app.NewExportService(reviewRepo, extractionRepo, trainingRepo, deploymentRepo, storageConnector, auditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		tokenIssuer: tokenIssuer,
		services: &appServices{
			farm:             farmService,
			documentUpload:   documentUploadService,
			documentMetadata: documentMetadataService,
			documentDownload: documentDownloadService,
			extraction:       extractionService,
			review:           reviewService,
			subsidy:          subsidyService,
			application:      applicationService,
			export:           exportService,
			audit:            auditService,
		},
	}, nil
}

// initializeScanBackend selects the virus scan backend from configuration.
// The off backend disables scanning; every scannable file is then skipped.
func initializeScanBackend(settings *config.ScannerSettings, log logger.Logger) (scanning.ScanBackend, error) {
	switch settings.Backend {
	case config.ScanBackendCloud:
		return infrascanning.NewCloudScanBackend(settings, log)
	case config.ScanBackendClamd:
		return infrascanning.NewClamdScanBackend(settings, log)
	case config.ScanBackendOff:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported scan backend: %s", settings.Backend)
	}
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.tokenIssuer,
		deps.services.farm,
		deps.services.documentUpload,
		deps.services.documentMetadata,
		deps.services.documentDownload,
		deps.services.extraction,
		deps.services.review,
		deps.services.subsidy,
		deps.services.application,
		deps.services.export,
		deps.services.audit,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
