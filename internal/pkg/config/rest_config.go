package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// RestConfig holds the full configuration for the REST API binary
type RestConfig struct {
	Port      string                   `mapstructure:"port"`
	Logger    LoggerSettings           `mapstructure:"logger"`
	Database  DatabaseSettings         `mapstructure:"database"`
	Storage   StorageConnectorSettings `mapstructure:"storage"`
	Scanner   ScannerSettings          `mapstructure:"scanner"`
	Extractor ExtractorSettings        `mapstructure:"extractor"`
	Auth      AuthSettings             `mapstructure:"auth"`
}

// InitializeRestConfig reads and validates the REST API configuration
// from a YAML file, with environment variable overrides (SPS_ prefix).
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("SPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.Scanner.ApplyDefaults()
	cfg.Auth.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks all settings sections of the REST API configuration
func (c *RestConfig) Validate() error {
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
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}
