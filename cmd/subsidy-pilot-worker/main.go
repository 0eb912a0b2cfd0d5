// cmd/subsidy-pilot-worker/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subsidy_pilot_service/internal/app"
	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/extraction"
	infrachangedetect "subsidy_pilot_service/internal/infrastructure/changedetect"
	"subsidy_pilot_service/internal/infrastructure/connector"
	infraextraction "subsidy_pilot_service/internal/infrastructure/extraction"
	"subsidy_pilot_service/internal/infrastructure/persistence"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const defaultDrainInterval = 30 * time.Second

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
		configPath = "../../configs/worker.yaml"
	}

	workerConfig, err := config.InitializeWorkerConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&workerConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	drainInterval := defaultDrainInterval
	if workerConfig.DrainInterval != "" {
		drainInterval, err = time.ParseDuration(workerConfig.DrainInterval)
		if err != nil {
			return fmt.Errorf("invalid drain_interval '%s': %w", workerConfig.DrainInterval, err)
		}
	}

	// Cancel on SIGINT/SIGTERM so both loops wind down together
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	detector, registry, extractionService, err := initializeWorker(ctx, workerConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize worker: %w", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			log.Warn("Failed to close source registry: ", err)
		}
	}()

	log.Info("Worker started, change detection every ", workerConfig.ChangeDetector.Interval, ", job drain every ", drainInterval)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return runChangeDetectionLoop(groupCtx, detector, workerConfig.ChangeDetector.Interval, log)
	})
	group.Go(func() error {
		return runExtractionDrainLoop(groupCtx, extractionService, drainInterval, log)
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return err
	}

	log.Info("Worker stopped gracefully")
	return nil
}

// initializeWorker wires the change detector and the extraction pipeline
func initializeWorker(ctx context.Context, cfg *config.WorkerConfig, log logger.Logger) (changedetect.Detector, *infrachangedetect.FileSourceRegistry, extraction.ExtractionService, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	subsidyRepo, err := persistence.NewGormSubsidyRepository(db, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create subsidy repository: %w", err)
	}

	snapshotRepo, err := persistence.NewGormSnapshotRepository(db, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create snapshot repository: %w", err)
	}

	documentRepo, err := persistence.NewGormDocumentRepository(db, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create document repository: %w", err)
	}

	extractionRepo, err := persistence.NewGormExtractionRepository(db, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create extraction repository: %w", err)
	}

	auditRepo, err := persistence.NewGormAuditEventRepository(db, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create audit repository: %w", err)
	}

	registry, err := infrachangedetect.NewFileSourceRegistry(cfg.ChangeDetector.RegistryPath, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create source registry: %w", err)
	}

	sourceClient, err := infrachangedetect.NewHTTPSourceClient(&cfg.ChangeDetector, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create source client: %w", err)
	}

	detector, err := app.NewChangeDetector(&cfg.ChangeDetector, sourceClient, registry, snapshotRepo, subsidyRepo, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create change detector: %w", err)
	}

	storageConnector, err := connector.NewAzureBlobConnector(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create Azure blob connector: %w", err)
	}

	auditService, err := app.NewAuditService(auditRepo, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	fieldExtractor, err := infraextraction.NewGenAIExtractor(ctx, &cfg.Extractor, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create field extractor: %w", err)
	}

	var ocrProcessor extraction.OCRProcessor
	if cfg.Extractor.OCREnabled {
		ocrProcessor, err = infraextraction.NewGosseractOCR(&cfg.Extractor, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create OCR processor: %w", err)
		}
	}

	extractionService, err := app.NewExtractionService(&cfg.Extractor, extractionRepo, documentRepo, storageConnector, ocrProcessor, fieldExtractor, auditService, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create extraction service: %w", err)
	}

	return detector, registry, extractionService, nil
}

// runChangeDetectionLoop polls all registered sources on a fixed interval.
// The first sweep runs immediately.
func runChangeDetectionLoop(ctx context.Context, detector changedetect.Detector, interval time.Duration, log logger.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		results, err := detector.CheckAll(ctx)
		if err != nil {
			log.Error("Change detection sweep failed: ", err)
		} else {
			changed := 0
			for _, result := range results {
				if result.ChangesDetected {
					changed++
				}
			}
			log.Info("Change detection sweep completed: ", len(results), " sources checked, ", changed, " changed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// runExtractionDrainLoop picks up pending extraction jobs and processes them
// one at a time. A failing job is logged and skipped.
func runExtractionDrainLoop(ctx context.Context, extractionService extraction.ExtractionService, interval time.Duration, log logger.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		query := extraction.NewExtractionJobQuery()
		query.Status = extraction.StatusPending

		jobs, err := extractionService.List(ctx, query)
		if err != nil {
			log.Error("Failed to list pending extraction jobs: ", err)
		} else {
			for _, job := range jobs {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if _, err := extractionService.ProcessJob(ctx, job.ID); err != nil {
					log.Error("Failed to process extraction job ", job.ID, ": ", err)
				}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
