package reviews

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ExtractionReview entity: one human correction of one extracted field,
// stored as before/after values for later training export.
type ExtractionReview struct {
	ID             string    `validate:"required,uuid4"`
	ExtractionID   string    `validate:"required,uuid4"`
	ReviewerUserID string    `validate:"required,uuid4"`
	FieldName      string    `validate:"required,min=1,max=100"`
	OriginalValue  string    `validate:"omitempty,max=4000"`
	CorrectedValue string    `validate:"omitempty,max=4000"`
	Accepted       bool
	ReviewedAt     time.Time `validate:"required"`
}

// Validate for validating ExtractionReview struct
func (r *ExtractionReview) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
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
