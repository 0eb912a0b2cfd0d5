package commands

import (
	"fmt"
	"os"

	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// In commands/common.go
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadWorkerConfig resolves the configuration file from the --config flag,
// falling back to the CONFIG_PATH environment variable.
func loadWorkerConfig(cmd *cobra.Command) (*config.WorkerConfig, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		return nil, fmt.Errorf("no configuration file given; pass --config or set CONFIG_PATH")
	}

	workerConfig, err := config.InitializeWorkerConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	return workerConfig, nil
}
