package extraction

import (
	"context"
	"encoding/json"
)

// FieldResult is the structured output of an LLM field extractor.
type FieldResult struct {
	Fields     json.RawMessage
	Confidence float64
	ModelName  string
}

// FieldExtractor abstracts LLM-based form field extraction.
type FieldExtractor interface {
	// ExtractFields turns document text into structured subsidy-form fields.
	ExtractFields(ctx context.Context, text string, documentName string) (*FieldResult, error)
}

// OCRProcessor abstracts text recovery from scanned images.
type OCRProcessor interface {
	// Text runs OCR over the image or scanned PDF content.
	Text(ctx context.Context, content []byte) (string, error)
}

// ExtractionService drives a job through the pipeline.
type ExtractionService interface {
	// StartJob creates a pending job for a document.
	StartJob(ctx context.Context, documentID string) (*ExtractionJob, error)
	// ProcessJob runs OCR and field extraction for a pending job.
	ProcessJob(ctx context.Context, jobID string) (*ExtractionJob, error)
	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, jobID string) (*ExtractionJob, error)
	// List retrieves jobs with optional filter.
	List(ctx context.Context, query *ExtractionJobQuery) ([]*ExtractionJob, error)
}

// ExtractionRepository defines the persistence interface for extraction jobs
type ExtractionRepository interface {
	// Create adds a new job to the database
	Create(ctx context.Context, job *ExtractionJob) error
	// List lists jobs with optional filter
	List(ctx context.Context, query *ExtractionJobQuery) ([]*ExtractionJob, error)
	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, jobID string) (*ExtractionJob, error)
	// UpdateByID updates a job by ID
	UpdateByID(ctx context.Context, job *ExtractionJob) error
}
