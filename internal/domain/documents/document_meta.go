package documents

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Scan status constants
const (
	ScanStatusPending  = "pending"
	ScanStatusSkipped  = "skipped"
	ScanStatusClean    = "clean"
	ScanStatusInfected = "infected"
)

// Extraction status constants mirrored on the document for quick listing
const (
	ExtractionStatusNone      = "none"
	ExtractionStatusPending   = "pending"
	ExtractionStatusCompleted = "completed"
	ExtractionStatusFailed    = "failed"
)

// DocumentMeta entity
type DocumentMeta struct {
	ID               string    `validate:"required,uuid4"`
	FarmID           string    `validate:"required,uuid4"`
	UserID           string    `validate:"required,uuid4"`
	Name             string    `validate:"required,min=1,max=255"`
	Size             int64     `validate:"required,min=1"`
	ContentType      string    `validate:"required,min=1,max=100"`
	Checksum         string    `validate:"required,len=64,hexadecimal"`
	ScanStatus       string    `validate:"required,oneof=pending skipped clean infected"`
	ExtractionStatus string    `validate:"required,oneof=none pending completed failed"`
	StoragePath      string    `validate:"required,min=1,max=512"`
	DateTimeCreated  time.Time `validate:"required"`
}

// Validate for validating DocumentMeta struct
func (d *DocumentMeta) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// DocumentMetaQuery is a filter for listing document metadata
type DocumentMetaQuery struct {
	FarmID          string    `validate:"omitempty,uuid4"`
	Name            string    `validate:"omitempty,max=255"`
	ContentType     string    `validate:"omitempty,max=100"`
	ScanStatus      string    `validate:"omitempty,oneof=pending skipped clean infected"`
	DateTimeCreated time.Time
	Limit           int    `validate:"omitempty,min=1,max=500"`
	Offset          int    `validate:"omitempty,min=0"`
	SortBy          string `validate:"omitempty,oneof=name size date_time_created"`
	SortOrder       string `validate:"omitempty,oneof=asc desc"`
}

// NewDocumentMetaQuery creates a DocumentMetaQuery with default paging.
func NewDocumentMetaQuery() *DocumentMetaQuery {
	return &DocumentMetaQuery{
		Limit:  100,
		Offset: 0,
	}
}

// Validate for validating DocumentMetaQuery struct
func (q *DocumentMetaQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid document query: %w", err)
	}
	return nil
}
