package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Scan backend constants
const (
	ScanBackendCloud = "cloud"
	ScanBackendClamd = "clamd"
	ScanBackendOff   = "off"
)

// ScannerSettings holds settings for the virus scan wrapper
type ScannerSettings struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=cloud clamd off"`

	// Cloud reputation API
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`

	// Local clamd daemon
	ClamdAddress string `mapstructure:"clamd_address"`

	// Verdict polling
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollMaxInterval time.Duration `mapstructure:"poll_max_interval"`
	PollTimeout     time.Duration `mapstructure:"poll_timeout"`

	// Scan decision heuristics
	MaxScanSize   int64 `mapstructure:"max_scan_size"`
	SkipBelowSize int64 `mapstructure:"skip_below_size"`

	// FailOpen marks files clean when the backend is unreachable
	FailOpen bool `mapstructure:"fail_open"`
}

// Validate checks that all fields in ScannerSettings are valid
func (s *ScannerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ScannerSettings: %w", err)
	}

	switch s.Backend {
	case ScanBackendCloud:
		if s.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the cloud scan backend")
		}
	case ScanBackendClamd:
		if s.ClamdAddress == "" {
			return fmt.Errorf("clamd_address is required for the clamd scan backend")
		}
	}

	return nil
}

// ApplyDefaults fills unset polling and size fields with safe values
func (s *ScannerSettings) ApplyDefaults() {
	if s.PollInterval <= 0 {
		s.PollInterval = 2 * time.Second
	}
	if s.PollMaxInterval <= 0 {
		s.PollMaxInterval = 30 * time.Second
	}
	if s.PollTimeout <= 0 {
		s.PollTimeout = 3 * time.Minute
	}
	if s.MaxScanSize <= 0 {
		s.MaxScanSize = 100 << 20
	}
	if s.SkipBelowSize < 0 {
		s.SkipBelowSize = 0
	}
}
