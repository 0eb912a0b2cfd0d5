package audit

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Audit action constants
const (
	ActionDocumentUpload    = "document.upload"
	ActionDocumentDelete    = "document.delete"
	ActionDocumentDownload  = "document.download"
	ActionScanFailOpen      = "scan.fail_open"
	ActionScanInfected      = "scan.infected"
	ActionExtractionStart   = "extraction.start"
	ActionReviewSubmit      = "review.submit"
	ActionTrainingExport    = "training.export"
	ActionTokenIssued       = "auth.token_issued"
	ActionApplicationChange = "application.transition"
)

// Event entity: one row of the security audit log.
type Event struct {
	ID        string    `validate:"required,uuid4"`
	UserID    string    `validate:"omitempty,uuid4"`
	Action    string    `validate:"required,min=1,max=100"`
	Resource  string    `validate:"omitempty,max=255"`
	Detail    string    `validate:"omitempty,max=2000"`
	ClientIP  string    `validate:"omitempty,max=45"`
	CreatedAt time.Time `validate:"required"`
}

// Validate for validating Event struct
func (e *Event) Validate() error {
	validate := validator.New()
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("validation failed for audit event: %w", err)
	}
	return nil
}

// EventQuery is a filter for listing audit events
type EventQuery struct {
	UserID string `validate:"omitempty,uuid4"`
	Action string `validate:"omitempty,max=100"`
	Since  time.Time
	Limit  int `validate:"omitempty,min=1,max=1000"`
	Offset int `validate:"omitempty,min=0"`
}

// NewEventQuery creates an EventQuery with default paging.
func NewEventQuery() *EventQuery {
	return &EventQuery{Limit: 200}
}

// Validate for validating EventQuery struct
func (q *EventQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid audit query: %w", err)
	}
	return nil
}
