package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	infrascanning "subsidy_pilot_service/internal/infrastructure/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ScanCommandHandler encapsulates logic for scanning local files via CLI.
type ScanCommandHandler struct {
	logger logger.Logger
}

// NewScanCommandHandler initializes and returns a ScanCommandHandler instance
// with a configured logger.
func NewScanCommandHandler() (*ScanCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &ScanCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ScanFileCmd submits a local file to the clamd daemon and prints the verdict.
// Useful for checking a document before uploading it through the API.
func (commandHandler *ScanCommandHandler) ScanFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	clamdAddress, err := cmd.Flags().GetString("clamd-address")
	if err != nil {
		commandHandler.logger.Error("invalid clamd-address flag ", err)
		return
	}

	content, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	settings := &config.ScannerSettings{
		Backend:      config.ScanBackendClamd,
		ClamdAddress: clamdAddress,
	}
	settings.ApplyDefaults()

	backend, err := infrascanning.NewClamdScanBackend(settings, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	result, err := backend.Scan(context.Background(), filepath.Base(inputFilePath), content)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if result.Clean {
		commandHandler.logger.Info("File ", inputFilePath, " is clean (vendor ", result.Vendor, ")")
		return
	}
	commandHandler.logger.Warn("File ", inputFilePath, " is infected: ", strings.Join(result.Threats, ", "))
}

// InitScanCommands registers scan-related commands
func InitScanCommands(rootCmd *cobra.Command) error {
	handler, err := NewScanCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create scan command handler %w", err)
	}

	var scanFileCmd = &cobra.Command{
		Use:   "scan-file",
		Short: "Scan a local file for malware via clamd",
		Run:   handler.ScanFileCmd,
	}
	scanFileCmd.Flags().StringP("input-file", "", "", "Path to the file to scan")
	scanFileCmd.Flags().StringP("clamd-address", "", "localhost:3310", "Address of the clamd daemon")
	rootCmd.AddCommand(scanFileCmd)

	return nil
}
