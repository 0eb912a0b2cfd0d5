package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Extraction job status constants. Transitions are monotonic:
// pending -> ocr -> extracting -> completed | failed.
const (
	StatusPending    = "pending"
	StatusOCR        = "ocr"
	StatusExtracting = "extracting"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ExtractionJob entity
type ExtractionJob struct {
	ID           string          `validate:"required,uuid4"`
	DocumentID   string          `validate:"required,uuid4"`
	Status       string          `validate:"required,extractionStatusValidation"`
	Fields       json.RawMessage `validate:"omitempty"`
	Confidence   float64         `validate:"gte=0,lte=1"`
	NeedsReview  bool
	ModelName    string `validate:"omitempty,max=100"`
	OCRText      string
	ErrorMessage string `validate:"omitempty,max=2000"`
	Reviewed     bool
	StartedAt    time.Time `validate:"required"`
	FinishedAt   *time.Time
}

// Validate for validating ExtractionJob struct
func (j *ExtractionJob) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("extractionStatusValidation", validators.ExtractionStatusValidation); err != nil {
		return fmt.Errorf("failed to register custom validation: %w", err)
	}

	err := validate.Struct(j)
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

// statusRank orders the job lifecycle for monotonic transition checks.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusOCR:        1,
	StatusExtracting: 2,
	StatusCompleted:  3,
	StatusFailed:     3,
}

// CanTransition reports whether moving from to next keeps the lifecycle monotonic.
func CanTransition(from, next string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	nextRank, ok := statusRank[next]
	if !ok {
		return false
	}
	if from == StatusCompleted || from == StatusFailed {
		return false
	}
	return nextRank > fromRank
}

// ExtractionJobQuery is a filter for listing extraction jobs
type ExtractionJobQuery struct {
	DocumentID  string `validate:"omitempty,uuid4"`
	Status      string `validate:"omitempty,oneof=pending ocr extracting completed failed"`
	NeedsReview *bool
	Limit       int `validate:"omitempty,min=1,max=500"`
	Offset      int `validate:"omitempty,min=0"`
}

// NewExtractionJobQuery creates an ExtractionJobQuery with default paging.
func NewExtractionJobQuery() *ExtractionJobQuery {
	return &ExtractionJobQuery{Limit: 100}
}

// Validate for validating ExtractionJobQuery struct
func (q *ExtractionJobQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid extraction query: %w", err)
	}
	return nil
}
