package changedetect

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Source describes one external open-data source from the registry file.
type Source struct {
	Code       string `yaml:"code" validate:"required,min=1,max=50"`
	Name       string `yaml:"name" validate:"required"`
	SummaryURL string `yaml:"summary_url" validate:"required,url"`
	RecordsURL string `yaml:"records_url" validate:"omitempty,url"`
	Country    string `yaml:"country" validate:"required,iso3166_1_alpha2"`
}

// Validate for validating Source struct
func (s *Source) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for source %q: %w", s.Code, err)
	}
	return nil
}

// Summary is the small per-source fingerprint fetched on every poll.
type Summary struct {
	RecordCount int
	ContentHash string
}

// SourceSnapshot is the last observed state of one source.
type SourceSnapshot struct {
	SourceCode  string    `validate:"required,min=1,max=50"`
	RecordCount int       `validate:"min=0"`
	ContentHash string    `validate:"omitempty,len=64,hexadecimal"`
	CheckedAt   time.Time `validate:"required"`
}

// Validate for validating SourceSnapshot struct
func (s *SourceSnapshot) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for snapshot of %q: %w", s.SourceCode, err)
	}
	return nil
}

// Changed reports whether the new summary differs from this snapshot.
func (s *SourceSnapshot) Changed(next Summary) bool {
	return s.RecordCount != next.RecordCount || s.ContentHash != next.ContentHash
}

// DetectionResult reports one poll cycle's outcome for a source.
type DetectionResult struct {
	SourceCode      string
	ChangesDetected bool
	RecordCount     int
	SyncedRecords   int
	CheckedAt       time.Time
}
