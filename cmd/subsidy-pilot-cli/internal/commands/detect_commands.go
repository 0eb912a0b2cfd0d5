package commands

import (
	"context"
	"fmt"

	"subsidy_pilot_service/internal/app"
	"subsidy_pilot_service/internal/domain/changedetect"
	infrachangedetect "subsidy_pilot_service/internal/infrastructure/changedetect"
	"subsidy_pilot_service/internal/infrastructure/persistence"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DetectCommandHandler encapsulates logic for running a one-off change
// detection sweep via CLI.
type DetectCommandHandler struct {
	logger logger.Logger
}

// NewDetectCommandHandler initializes and returns a DetectCommandHandler
// instance with a configured logger.
func NewDetectCommandHandler() (*DetectCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DetectCommandHandler{
		logger: loggerInstance,
	}, nil
}

// DetectChangesCmd checks every registered source once and prints the results.
func (commandHandler *DetectCommandHandler) DetectChangesCmd(cmd *cobra.Command, _ []string) {
	workerConfig, err := loadWorkerConfig(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	detector, registry, err := commandHandler.buildDetector(workerConfig)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := registry.Close(); err != nil {
			commandHandler.logger.Warn("Failed to close source registry: ", err)
		}
	}()

	results, err := detector.CheckAll(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, result := range results {
		if result.ChangesDetected {
			commandHandler.logger.Info("Source ", result.SourceCode, ": changed, ", result.SyncedRecords, " records synced")
		} else {
			commandHandler.logger.Info("Source ", result.SourceCode, ": unchanged (", result.RecordCount, " records)")
		}
	}
}

func (commandHandler *DetectCommandHandler) buildDetector(cfg *config.WorkerConfig) (changedetect.Detector, *infrachangedetect.FileSourceRegistry, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	subsidyRepo, err := persistence.NewGormSubsidyRepository(db, commandHandler.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create subsidy repository: %w", err)
	}

	snapshotRepo, err := persistence.NewGormSnapshotRepository(db, commandHandler.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create snapshot repository: %w", err)
	}

	registry, err := infrachangedetect.NewFileSourceRegistry(cfg.ChangeDetector.RegistryPath, commandHandler.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create source registry: %w", err)
	}

	sourceClient, err := infrachangedetect.NewHTTPSourceClient(&cfg.ChangeDetector, commandHandler.logger)
	if err != nil {
		_ = registry.Close()
		return nil, nil, fmt.Errorf("failed to create source client: %w", err)
	}

	detector, err := app.NewChangeDetector(&cfg.ChangeDetector, sourceClient, registry, snapshotRepo, subsidyRepo, commandHandler.logger)
	if err != nil {
		_ = registry.Close()
		return nil, nil, fmt.Errorf("failed to create change detector: %w", err)
	}

	return detector, registry, nil
}

// InitDetectCommands registers change-detection commands
func InitDetectCommands(rootCmd *cobra.Command) error {
	handler, err := NewDetectCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create detect command handler %w", err)
	}

	var detectChangesCmd = &cobra.Command{
		Use:   "detect-changes",
		Short: "Run one change detection sweep over all registered sources",
		Run:   handler.DetectChangesCmd,
	}
	detectChangesCmd.Flags().StringP("config", "", "", "Path to the worker configuration file")
	rootCmd.AddCommand(detectChangesCmd)

	return nil
}
