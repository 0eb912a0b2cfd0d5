package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

const extractionPrompt = `You extract subsidy application form fields from farm documents.
Given the document text, return a JSON object with exactly two keys:
"fields": an object mapping field names (farm_name, owner_name, address, country,
region, hectares, parcel_ids, legal_status, iban, registration_number) to string
values found in the text, omitting fields that are not present, and
"confidence": a number between 0 and 1 estimating how reliable the extraction is.`

// extractorResponse is the JSON shape requested from the model.
type extractorResponse struct {
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
}

// genAIExtractor extracts structured form fields with the Gemini API.
type genAIExtractor struct {
	client *genai.Client
	model  string
	logger logger.Logger
}

// NewGenAIExtractor creates a FieldExtractor backed by Google's Gemini API.
func NewGenAIExtractor(ctx context.Context, settings *config.ExtractorSettings, logger logger.Logger) (extraction.FieldExtractor, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for the genai extractor")
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: settings.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &genAIExtractor{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (e *genAIExtractor) ExtractFields(ctx context.Context, text string, documentName string) (*extraction.FieldResult, error) {
	if text == "" {
		return nil, fmt.Errorf("no text to extract fields from")
	}

	prompt := fmt.Sprintf("%s\n\nDocument name: %s\n\nDocument text:\n%s", extractionPrompt, documentName, text)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI field extraction failed: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, fmt.Errorf("GenAI returned an empty response for '%s'", documentName)
	}

	var parsed extractorResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	fields, err := json.Marshal(parsed.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extracted fields: %w", err)
	}

	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}

	e.logger.Info("Extracted ", len(parsed.Fields), " fields from ", documentName)

	return &extraction.FieldResult{
		Fields:     fields,
		Confidence: parsed.Confidence,
		ModelName:  e.model,
	}, nil
}
