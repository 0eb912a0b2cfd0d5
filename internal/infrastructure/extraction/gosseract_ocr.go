package extraction

import (
	"context"
	"fmt"
	"strings"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/otiai10/gosseract/v2"
)

// gosseractOCR recovers text from scanned documents with Tesseract.
// A fresh client per call keeps the processor safe for concurrent use.
type gosseractOCR struct {
	languages     []string
	clientFactory func() *gosseract.Client
	logger        logger.Logger
}

// NewGosseractOCR creates an OCRProcessor backed by Tesseract.
func NewGosseractOCR(settings *config.ExtractorSettings, logger logger.Logger) (extraction.OCRProcessor, error) {
	languages := settings.OCRLanguages
	if len(languages) == 0 {
		languages = []string{"eng"}
	}

	return &gosseractOCR{
		languages:     languages,
		clientFactory: gosseract.NewClient,
		logger:        logger,
	}, nil
}

func (o *gosseractOCR) Text(ctx context.Context, content []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if len(content) == 0 {
		return "", fmt.Errorf("no content to run OCR on")
	}

	client := o.clientFactory()
	defer func() {
		_ = client.Close()
	}()

	if err := client.SetImageFromBytes(content); err != nil {
		return "", fmt.Errorf("failed to set OCR image: %w", err)
	}
	if err := client.SetLanguage(o.languages...); err != nil {
		return "", fmt.Errorf("failed to set OCR languages: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}

	return strings.TrimSpace(text), nil
}
