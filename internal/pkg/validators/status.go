package validators

import (
	"github.com/go-playground/validator/v10"
)

// ApplicationStatusValidation validates application status enum values.
func ApplicationStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "submitted", "under_review", "approved", "rejected":
		return true
	default:
		return false
	}
}

// ExtractionStatusValidation validates extraction job status enum values.
func ExtractionStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "ocr", "extracting", "completed", "failed":
		return true
	default:
		return false
	}
}

// TrainingStatusValidation validates training job status enum values.
func TrainingStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "exported", "queued", "running", "completed", "failed":
		return true
	default:
		return false
	}
}
