package commands

import (
	"context"
	"fmt"

	"subsidy_pilot_service/internal/app"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/infrastructure/connector"
	"subsidy_pilot_service/internal/infrastructure/persistence"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// TrainingCommandHandler encapsulates logic for exporting training datasets
// via CLI.
type TrainingCommandHandler struct {
	logger logger.Logger
}

// NewTrainingCommandHandler initializes and returns a TrainingCommandHandler
// instance with a configured logger.
func NewTrainingCommandHandler() (*TrainingCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &TrainingCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ExportTrainingCmd collects accepted corrections and writes a JSONL dataset
// to blob storage, recording a training job for it.
func (commandHandler *TrainingCommandHandler) ExportTrainingCmd(cmd *cobra.Command, _ []string) {
	workerConfig, err := loadWorkerConfig(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	exportService, err := commandHandler.buildExportService(ctx, workerConfig)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	job, err := exportService.Export(ctx)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Exported ", job.ExampleCount, " examples to ", job.DatasetPath, " (job ", job.ID, ")")
}

func (commandHandler *TrainingCommandHandler) buildExportService(ctx context.Context, cfg *config.WorkerConfig) (training.ExportService, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	reviewRepo, err := persistence.NewGormReviewRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review repository: %w", err)
	}

	extractionRepo, err := persistence.NewGormExtractionRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction repository: %w", err)
	}

	trainingRepo, err := persistence.NewGormTrainingJobRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create training job repository: %w", err)
	}

	deploymentRepo, err := persistence.NewGormDeploymentRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deployment repository: %w", err)
	}

	auditRepo, err := persistence.NewGormAuditEventRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit repository: %w", err)
	}

	auditService, err := app.NewAuditService(auditRepo, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	storageConnector, err := connector.NewAzureBlobConnector(ctx, &cfg.Storage, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob connector: %w", err)
	}

	exportService, err := app.NewExportService(reviewRepo, extractionRepo, trainingRepo, deploymentRepo, storageConnector, auditService, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %w", err)
	}

	return exportService, nil
}

// InitTrainingCommands registers training-related commands
func InitTrainingCommands(rootCmd *cobra.Command) error {
	handler, err := NewTrainingCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create training command handler %w", err)
	}

	var exportTrainingCmd = &cobra.Command{
		Use:   "export-training",
		Short: "Export accepted corrections as a JSONL training dataset",
		Run:   handler.ExportTrainingCmd,
	}
	exportTrainingCmd.Flags().StringP("config", "", "", "Path to the worker configuration file")
	rootCmd.AddCommand(exportTrainingCmd)

	return nil
}
