package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// WorkerConfig holds the full configuration for the background worker binary
type WorkerConfig struct {
	Logger         LoggerSettings           `mapstructure:"logger"`
	Database       DatabaseSettings         `mapstructure:"database"`
	Storage        StorageConnectorSettings `mapstructure:"storage"`
	Scanner        ScannerSettings          `mapstructure:"scanner"`
	Extractor      ExtractorSettings        `mapstructure:"extractor"`
	ChangeDetector ChangeDetectorSettings   `mapstructure:"change_detector"`

	// DrainInterval controls how often pending extraction jobs are picked up
	DrainInterval string `mapstructure:"drain_interval"`
}

// InitializeWorkerConfig reads and validates the worker configuration
// from a YAML file, with environment variable overrides (SPS_ prefix).
func InitializeWorkerConfig(configPath string) (*WorkerConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("SPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg WorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Scanner.ApplyDefaults()
	cfg.ChangeDetector.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks all settings sections of the worker configuration
func (c *WorkerConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Scanner.Validate(); err != nil {
		return err
	}
	if err := c.Extractor.Validate(); err != nil {
		return err
	}
	if err := c.ChangeDetector.Validate(); err != nil {
		return err
	}
	return nil
}
