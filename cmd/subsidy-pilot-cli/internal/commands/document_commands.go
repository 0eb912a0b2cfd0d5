package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"subsidy_pilot_service/internal/app"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/infrastructure/connector"
	"subsidy_pilot_service/internal/infrastructure/persistence"
	infrascanning "subsidy_pilot_service/internal/infrastructure/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/httputil"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DocumentCommandHandler encapsulates logic for uploading documents via CLI.
type DocumentCommandHandler struct {
	logger logger.Logger
}

// NewDocumentCommandHandler initializes and returns a DocumentCommandHandler
// instance with a configured logger.
func NewDocumentCommandHandler() (*DocumentCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DocumentCommandHandler{
		logger: loggerInstance,
	}, nil
}

// UploadDocumentCmd uploads a local file through the full ingest path:
// scan, blob storage, metadata persistence.
func (commandHandler *DocumentCommandHandler) UploadDocumentCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	farmID, err := cmd.Flags().GetString("farm-id")
	if err != nil {
		commandHandler.logger.Error("invalid farm-id flag ", err)
		return
	}
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}

	workerConfig, err := loadWorkerConfig(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	content, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	form, err := httputil.CreateForm(content, filepath.Base(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	uploadService, err := commandHandler.buildUploadService(ctx, workerConfig)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	metas, err := uploadService.Upload(ctx, form, farmID, userID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, meta := range metas {
		commandHandler.logger.Info("Uploaded ", meta.Name, " as document ", meta.ID, " (scan status ", meta.ScanStatus, ")")
	}
}

func (commandHandler *DocumentCommandHandler) buildUploadService(ctx context.Context, cfg *config.WorkerConfig) (documents.DocumentUploadService, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	documentRepo, err := persistence.NewGormDocumentRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
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

	scanBackend, err := commandHandler.buildScanBackend(&cfg.Scanner)
	if err != nil {
		return nil, err
	}

	scanService, err := app.NewScanService(&cfg.Scanner, scanBackend, auditService, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan service: %w", err)
	}

	uploadService, err := app.NewDocumentUploadService(storageConnector, documentRepo, scanService, auditService, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document upload service: %w", err)
	}

	return uploadService, nil
}

func (commandHandler *DocumentCommandHandler) buildScanBackend(settings *config.ScannerSettings) (scanning.ScanBackend, error) {
	switch settings.Backend {
	case config.ScanBackendCloud:
		return infrascanning.NewCloudScanBackend(settings, commandHandler.logger)
	case config.ScanBackendClamd:
		return infrascanning.NewClamdScanBackend(settings, commandHandler.logger)
	case config.ScanBackendOff:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported scan backend: %s", settings.Backend)
	}
}

// InitDocumentCommands registers document-related commands
func InitDocumentCommands(rootCmd *cobra.Command) error {
	handler, err := NewDocumentCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create document command handler %w", err)
	}

	var uploadDocumentCmd = &cobra.Command{
		Use:   "upload-document",
		Short: "Upload a local file through scan and storage",
		Run:   handler.UploadDocumentCmd,
	}
	uploadDocumentCmd.Flags().StringP("input-file", "", "", "Path to the file to upload")
	uploadDocumentCmd.Flags().StringP("farm-id", "", "", "Farm the document belongs to")
	uploadDocumentCmd.Flags().StringP("user-id", "", "", "User performing the upload")
	uploadDocumentCmd.Flags().StringP("config", "", "", "Path to the worker configuration file")
	rootCmd.AddCommand(uploadDocumentCmd)

	return nil
}
