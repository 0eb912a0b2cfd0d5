package farms

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Farm entity
type Farm struct {
	ID          string    `validate:"required,uuid4"`
	OwnerUserID string    `validate:"required,uuid4"`
	Name        string    `validate:"required,min=1,max=255"`
	Country     string    `validate:"required,iso3166_1_alpha2"`
	Region      string    `validate:"omitempty,max=100"`
	Hectares    float64   `validate:"gte=0"`
	LegalStatus string    `validate:"omitempty,max=100"`
	CreatedAt   time.Time `validate:"required"`
}

// Validate for validating Farm struct
func (f *Farm) Validate() error {
	validate := validator.New()

	err := validate.Struct(f)
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
