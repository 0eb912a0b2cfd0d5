package training

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Training job status constants. The exporter creates jobs in the exported
// state; the (simulated) runner advances queued -> running -> completed|failed.
const (
	StatusExported  = "exported"
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// TrainingJob entity
type TrainingJob struct {
	ID           string `validate:"required,uuid4"`
	DatasetPath  string `validate:"required,min=1,max=512"`
	ExampleCount int    `validate:"min=0"`
	Status       string `validate:"required,trainingStatusValidation"`
	Metrics      json.RawMessage
	CreatedAt    time.Time `validate:"required"`
	FinishedAt   *time.Time
}

// Validate for validating TrainingJob struct
func (j *TrainingJob) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("trainingStatusValidation", validators.TrainingStatusValidation); err != nil {
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

// allowedTransitions maps each training job status to its legal successors.
var allowedTransitions = map[string][]string{
	StatusExported: {StatusQueued},
	StatusQueued:   {StatusRunning, StatusFailed},
	StatusRunning:  {StatusCompleted, StatusFailed},
}

// CanTransition reports whether a status change is legal.
func CanTransition(from, next string) bool {
	for _, s := range allowedTransitions[from] {
		if s == next {
			return true
		}
	}
	return false
}

// ModelDeployment entity
type ModelDeployment struct {
	ID            string    `validate:"required,uuid4"`
	TrainingJobID string    `validate:"required,uuid4"`
	ModelName     string    `validate:"required,min=1,max=100"`
	Version       string    `validate:"required,min=1,max=50"`
	Active        bool
	DeployedAt    time.Time `validate:"required"`
}

// Validate for validating ModelDeployment struct
func (d *ModelDeployment) Validate() error {
	validate := validator.New()

	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validation failed for ModelDeployment: %w", err)
	}
	return nil
}
