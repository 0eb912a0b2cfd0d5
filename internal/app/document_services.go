package app

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/pkg/logger"
)

// documentUploadService implements the DocumentUploadService interface for
// scanning and ingesting uploaded documents
type documentUploadService struct {
	storageConnector   documents.StorageConnector
	documentRepository documents.DocumentRepository
	scanService        scanning.ScanService
	audit              audit.Recorder
	logger             logger.Logger
}

// NewDocumentUploadService creates a new instance of DocumentUploadService
func NewDocumentUploadService(
	storageConnector documents.StorageConnector,
	documentRepository documents.DocumentRepository,
	scanService scanning.ScanService,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (documents.DocumentUploadService, error) {
	return &documentUploadService{
		storageConnector:   storageConnector,
		documentRepository: documentRepository,
		scanService:        scanService,
		audit:              auditRecorder,
		logger:             logger,
	}, nil
}

// Upload scans every file in the form and, when all of them pass, stores the
// content and persists metadata. An infected or oversized file rejects the
// whole batch so no partial uploads reach storage.
func (s *documentUploadService) Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*documents.DocumentMeta, error) {
	if form == nil || len(form.File["files"]) == 0 {
		return nil, fmt.Errorf("no files provided in upload request")
	}

	// Step 1: scan every file before anything reaches storage. Statuses are
	// kept per position, not per name, so same-named files in one batch keep
	// their own scan outcome.
	scanStatuses := make([]string, 0, len(form.File["files"]))
	for _, fileHeader := range form.File["files"] {
		content, err := readFileHeader(fileHeader)
		if err != nil {
			return nil, err
		}

		result, decision, err := s.scanService.ScanFile(ctx, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
		if err != nil {
			return nil, fmt.Errorf("scan rejected '%s': %w", fileHeader.Filename, err)
		}
		if !result.Clean {
			return nil, fmt.Errorf("file '%s' is infected: %v", fileHeader.Filename, result.Threats)
		}

		if decision == scanning.DecisionSkip {
			scanStatuses = append(scanStatuses, documents.ScanStatusSkipped)
		} else {
			scanStatuses = append(scanStatuses, documents.ScanStatusClean)
		}
	}

	// Step 2: upload the clean batch
	docs, err := s.storageConnector.Upload(ctx, form, farmID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload documents: %w", err)
	}
	if len(docs) != len(scanStatuses) {
		return nil, fmt.Errorf("storage returned %d documents for %d scanned files", len(docs), len(scanStatuses))
	}

	// Step 3: persist metadata with the scan outcomes
	for i, doc := range docs {
		doc.ScanStatus = scanStatuses[i]
		doc.ExtractionStatus = documents.ExtractionStatusNone

		if err := s.documentRepository.Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to save document metadata for '%s': %w", doc.Name, err)
		}

		s.audit.Record(ctx, &audit.Event{
			UserID:   userID,
			Action:   audit.ActionDocumentUpload,
			Resource: doc.ID,
			Detail:   doc.Name,
		})
	}

	s.logger.Info("Uploaded ", len(docs), " documents for farm ", farmID)
	return docs, nil
}

func readFileHeader(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", fileHeader.Filename, err)
	}

	content, err := io.ReadAll(file)
	closeErr := file.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", fileHeader.Filename, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close file '%s': %w", fileHeader.Filename, closeErr)
	}

	return content, nil
}

// documentMetadataService implements the DocumentMetadataService interface
// for retrieving and deleting document metadata
type documentMetadataService struct {
	storageConnector   documents.StorageConnector
	documentRepository documents.DocumentRepository
	audit              audit.Recorder
	logger             logger.Logger
}

// NewDocumentMetadataService creates a new instance of DocumentMetadataService
func NewDocumentMetadataService(
	documentRepository documents.DocumentRepository,
	storageConnector documents.StorageConnector,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (documents.DocumentMetadataService, error) {
	return &documentMetadataService{
		storageConnector:   storageConnector,
		documentRepository: documentRepository,
		audit:              auditRecorder,
		logger:             logger,
	}, nil
}

// List retrieves document metadata considering a query filter
func (s *documentMetadataService) List(ctx context.Context, query *documents.DocumentMetaQuery) ([]*documents.DocumentMeta, error) {
	docs, err := s.documentRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return docs, nil
}

// GetByID retrieves document metadata by ID
func (s *documentMetadataService) GetByID(ctx context.Context, documentID string) (*documents.DocumentMeta, error) {
	doc, err := s.documentRepository.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return doc, nil
}

// DeleteByID deletes a document and associated metadata by ID
func (s *documentMetadataService) DeleteByID(ctx context.Context, documentID string) error {
	doc, err := s.documentRepository.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := s.documentRepository.DeleteByID(ctx, documentID); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := s.storageConnector.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.audit.Record(ctx, &audit.Event{
		UserID:   doc.UserID,
		Action:   audit.ActionDocumentDelete,
		Resource: doc.ID,
		Detail:   doc.Name,
	})

	return nil
}

// documentDownloadService implements the DocumentDownloadService interface
type documentDownloadService struct {
	storageConnector   documents.StorageConnector
	documentRepository documents.DocumentRepository
	audit              audit.Recorder
	logger             logger.Logger
}

// NewDocumentDownloadService creates a new instance of DocumentDownloadService
func NewDocumentDownloadService(
	storageConnector documents.StorageConnector,
	documentRepository documents.DocumentRepository,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (documents.DocumentDownloadService, error) {
	return &documentDownloadService{
		storageConnector:   storageConnector,
		documentRepository: documentRepository,
		audit:              auditRecorder,
		logger:             logger,
	}, nil
}

// DownloadByID retrieves a document's content by ID
func (s *documentDownloadService) DownloadByID(ctx context.Context, documentID string) ([]byte, error) {
	doc, err := s.documentRepository.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	content, err := s.storageConnector.Download(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.audit.Record(ctx, &audit.Event{
		UserID:   doc.UserID,
		Action:   audit.ActionDocumentDownload,
		Resource: doc.ID,
		Detail:   doc.Name,
	})

	return content, nil
}
