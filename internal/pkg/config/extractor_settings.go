package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Extractor provider constants
const (
	ExtractorProviderGenAI = "genai"
)

// ExtractorSettings holds settings for OCR and LLM field extraction
type ExtractorSettings struct {
	Provider      string   `mapstructure:"provider" validate:"required,oneof=genai"`
	APIKey        string   `mapstructure:"api_key"`
	Model         string   `mapstructure:"model"`
	OCREnabled    bool     `mapstructure:"ocr_enabled"`
	OCRLanguages  []string `mapstructure:"ocr_languages"`
	MinConfidence float64  `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
}

// Validate checks that all fields in ExtractorSettings are valid
func (s *ExtractorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ExtractorSettings: %w", err)
	}

	if s.Provider == ExtractorProviderGenAI && s.APIKey == "" {
		return fmt.Errorf("api_key is required for the genai extractor")
	}

	return nil
}
