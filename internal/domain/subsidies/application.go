package subsidies

import (
	"errors"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Application status constants
const (
	ApplicationStatusDraft       = "draft"
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

// Application entity: one farm applying for one subsidy.
type Application struct {
	ID          string    `validate:"required,uuid4"`
	FarmID      string    `validate:"required,uuid4"`
	SubsidyID   string    `validate:"required,uuid4"`
	Status      string    `validate:"required,applicationStatusValidation"`
	CreatedAt   time.Time `validate:"required"`
	SubmittedAt *time.Time
}

// Validate for validating Application struct
func (a *Application) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("applicationStatusValidation", validators.ApplicationStatusValidation); err != nil {
		return fmt.Errorf("failed to register custom validation: %w", err)
	}

	err := validate.Struct(a)
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

// applicationTransitions maps each application status to its legal successors.
var applicationTransitions = map[string][]string{
	ApplicationStatusDraft:       {ApplicationStatusSubmitted},
	ApplicationStatusSubmitted:   {ApplicationStatusUnderReview, ApplicationStatusRejected},
	ApplicationStatusUnderReview: {ApplicationStatusApproved, ApplicationStatusRejected},
}

// CanTransitionApplication reports whether a status change is legal.
func CanTransitionApplication(from, next string) bool {
	for _, s := range applicationTransitions[from] {
		if s == next {
			return true
		}
	}
	return false
}
