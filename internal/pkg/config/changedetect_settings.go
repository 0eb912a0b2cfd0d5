package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ChangeDetectorSettings holds settings for the open-data source poller
type ChangeDetectorSettings struct {
	RegistryPath   string        `mapstructure:"registry_path" validate:"required"`
	Interval       time.Duration `mapstructure:"interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryInterval  time.Duration `mapstructure:"retry_interval"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// Validate checks that all fields in ChangeDetectorSettings are valid
func (s *ChangeDetectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ChangeDetectorSettings: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset fields with safe values
func (s *ChangeDetectorSettings) ApplyDefaults() {
	if s.Interval <= 0 {
		s.Interval = 15 * time.Minute
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 30 * time.Second
	}
	if s.RetryInterval <= 0 {
		s.RetryInterval = 5 * time.Second
	}
	if s.MaxRetries <= 0 {
		s.MaxRetries = 3
	}
}
