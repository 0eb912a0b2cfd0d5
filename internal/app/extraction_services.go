package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// extractionService implements the ExtractionService interface, driving jobs
// through the pending -> ocr -> extracting -> completed|failed lifecycle.
type extractionService struct {
	extractionRepository extraction.ExtractionRepository
	documentRepository   documents.DocumentRepository
	storageConnector     documents.StorageConnector
	ocrProcessor         extraction.OCRProcessor
	fieldExtractor       extraction.FieldExtractor
	minConfidence        float64
	audit                audit.Recorder
	logger               logger.Logger
}

// NewExtractionService creates a new instance of ExtractionService. The OCR
// processor may be nil when OCR is disabled; image documents then fail.
func NewExtractionService(
	settings *config.ExtractorSettings,
	extractionRepository extraction.ExtractionRepository,
	documentRepository documents.DocumentRepository,
	storageConnector documents.StorageConnector,
	ocrProcessor extraction.OCRProcessor,
	fieldExtractor extraction.FieldExtractor,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (extraction.ExtractionService, error) {
	if fieldExtractor == nil {
		return nil, fmt.Errorf("a field extractor is required")
	}

	return &extractionService{
		extractionRepository: extractionRepository,
		documentRepository:   documentRepository,
		storageConnector:     storageConnector,
		ocrProcessor:         ocrProcessor,
		fieldExtractor:       fieldExtractor,
		minConfidence:        settings.MinConfidence,
		audit:                auditRecorder,
		logger:               logger,
	}, nil
}

// StartJob creates a pending job for a document that passed scanning.
func (s *extractionService) StartJob(ctx context.Context, documentID string) (*extraction.ExtractionJob, error) {
	doc, err := s.documentRepository.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if doc.ScanStatus != documents.ScanStatusClean && doc.ScanStatus != documents.ScanStatusSkipped {
		return nil, fmt.Errorf("document '%s' has scan status '%s' and cannot be extracted", documentID, doc.ScanStatus)
	}

	job := &extraction.ExtractionJob{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Status:     extraction.StatusPending,
		StartedAt:  time.Now(),
	}

	if err := s.extractionRepository.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create extraction job: %w", err)
	}

	doc.ExtractionStatus = documents.ExtractionStatusPending
	if err := s.documentRepository.UpdateByID(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document extraction status: %w", err)
	}

	s.audit.Record(ctx, &audit.Event{
		UserID:   doc.UserID,
		Action:   audit.ActionExtractionStart,
		Resource: job.ID,
		Detail:   doc.Name,
	})

	s.logger.Info("Started extraction job ", job.ID, " for document ", documentID)
	return job, nil
}

// ProcessJob runs OCR and field extraction for a pending job.
func (s *extractionService) ProcessJob(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	job, err := s.extractionRepository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if job.Status != extraction.StatusPending {
		return nil, fmt.Errorf("extraction job '%s' is in status '%s', expected '%s'", jobID, job.Status, extraction.StatusPending)
	}

	doc, err := s.documentRepository.GetByID(ctx, job.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	content, err := s.storageConnector.Download(ctx, doc.StoragePath)
	if err != nil {
		return s.failJob(ctx, job, doc, fmt.Errorf("failed to download document content: %w", err))
	}

	text, err := s.recoverText(ctx, job, doc, content)
	if err != nil {
		return s.failJob(ctx, job, doc, err)
	}

	if err := s.transition(ctx, job, extraction.StatusExtracting); err != nil {
		return nil, err
	}

	result, err := s.fieldExtractor.ExtractFields(ctx, text, doc.Name)
	if err != nil {
		return s.failJob(ctx, job, doc, fmt.Errorf("field extraction failed: %w", err))
	}

	now := time.Now()
	job.Fields = result.Fields
	job.Confidence = result.Confidence
	job.ModelName = result.ModelName
	job.NeedsReview = result.Confidence < s.minConfidence
	job.FinishedAt = &now
	if !extraction.CanTransition(job.Status, extraction.StatusCompleted) {
		return nil, fmt.Errorf("illegal transition from '%s' to '%s'", job.Status, extraction.StatusCompleted)
	}
	job.Status = extraction.StatusCompleted

	if err := s.extractionRepository.UpdateByID(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update extraction job: %w", err)
	}

	doc.ExtractionStatus = documents.ExtractionStatusCompleted
	if err := s.documentRepository.UpdateByID(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document extraction status: %w", err)
	}

	s.logger.Info("Completed extraction job ", job.ID, " with confidence ", job.Confidence)
	return job, nil
}

// recoverText obtains the document text, via OCR for image content.
func (s *extractionService) recoverText(ctx context.Context, job *extraction.ExtractionJob, doc *documents.DocumentMeta, content []byte) (string, error) {
	if !strings.HasPrefix(doc.ContentType, "image/") {
		return string(content), nil
	}

	if s.ocrProcessor == nil {
		return "", fmt.Errorf("document '%s' needs OCR but OCR is disabled", doc.ID)
	}

	if err := s.transition(ctx, job, extraction.StatusOCR); err != nil {
		return "", err
	}

	text, err := s.ocrProcessor.Text(ctx, content)
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	job.OCRText = text
	return text, nil
}

// transition applies a monotonic status change and persists it.
func (s *extractionService) transition(ctx context.Context, job *extraction.ExtractionJob, next string) error {
	if !extraction.CanTransition(job.Status, next) {
		return fmt.Errorf("illegal transition from '%s' to '%s'", job.Status, next)
	}
	job.Status = next

	if err := s.extractionRepository.UpdateByID(ctx, job); err != nil {
		return fmt.Errorf("failed to update extraction job: %w", err)
	}
	return nil
}

// failJob records the failure on the job and document, then surfaces the cause.
func (s *extractionService) failJob(ctx context.Context, job *extraction.ExtractionJob, doc *documents.DocumentMeta, cause error) (*extraction.ExtractionJob, error) {
	now := time.Now()
	job.Status = extraction.StatusFailed
	job.ErrorMessage = cause.Error()
	job.FinishedAt = &now

	if err := s.extractionRepository.UpdateByID(ctx, job); err != nil {
		s.logger.Error("Failed to persist failed extraction job ", job.ID, ": ", err)
	}

	doc.ExtractionStatus = documents.ExtractionStatusFailed
	if err := s.documentRepository.UpdateByID(ctx, doc); err != nil {
		s.logger.Error("Failed to update document ", doc.ID, " after extraction failure: ", err)
	}

	return nil, cause
}

// GetByID retrieves a job by ID
func (s *extractionService) GetByID(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	job, err := s.extractionRepository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return job, nil
}

// List retrieves jobs with optional filter
func (s *extractionService) List(ctx context.Context, query *extraction.ExtractionJobQuery) ([]*extraction.ExtractionJob, error) {
	jobs, err := s.extractionRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return jobs, nil
}
