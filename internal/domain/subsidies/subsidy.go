package subsidies

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Subsidy entity, upserted from external open-data sources.
type Subsidy struct {
	ID          string    `validate:"required,uuid4"`
	SourceCode  string    `validate:"required,min=1,max=50"`
	ExternalID  string    `validate:"required,min=1,max=100"`
	Title       string    `validate:"required,min=1,max=500"`
	Agency      string    `validate:"omitempty,max=255"`
	Country     string    `validate:"required,iso3166_1_alpha2"`
	Deadline    *time.Time
	MinFunding  float64 `validate:"gte=0"`
	MaxFunding  float64 `validate:"gte=0"`
	MinHectares float64 `validate:"gte=0"`
	MaxHectares float64 `validate:"gte=0"`
	Eligibility string
	ContentHash string    `validate:"omitempty,len=64,hexadecimal"`
	UpdatedAt   time.Time `validate:"required"`
}

// Validate for validating Subsidy struct
func (s *Subsidy) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
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

	if s.MaxFunding > 0 && s.MinFunding > s.MaxFunding {
		return fmt.Errorf("min funding %f exceeds max funding %f", s.MinFunding, s.MaxFunding)
	}

	return nil
}

// OpenAt reports whether the subsidy still accepts applications at t.
func (s *Subsidy) OpenAt(t time.Time) bool {
	return s.Deadline == nil || s.Deadline.After(t)
}

// SubsidyQuery is a filter for listing subsidies
type SubsidyQuery struct {
	SourceCode string `validate:"omitempty,max=50"`
	Country    string `validate:"omitempty,iso3166_1_alpha2"`
	OpenOnly   bool
	Limit      int `validate:"omitempty,min=1,max=500"`
	Offset     int `validate:"omitempty,min=0"`
}

// NewSubsidyQuery creates a SubsidyQuery with default paging.
func NewSubsidyQuery() *SubsidyQuery {
	return &SubsidyQuery{Limit: 100}
}

// Validate for validating SubsidyQuery struct
func (q *SubsidyQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid subsidy query: %w", err)
	}
	return nil
}
