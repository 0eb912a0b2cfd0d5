package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// reviewService implements the ReviewService interface for human corrections
// of extracted fields.
type reviewService struct {
	reviewRepository     reviews.ReviewRepository
	extractionRepository extraction.ExtractionRepository
	audit                audit.Recorder
	logger               logger.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(
	reviewRepository reviews.ReviewRepository,
	extractionRepository extraction.ExtractionRepository,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (reviews.ReviewService, error) {
	return &reviewService{
		reviewRepository:     reviewRepository,
		extractionRepository: extractionRepository,
		audit:                auditRecorder,
		logger:               logger,
	}, nil
}

// SubmitReview stores a correction and, when accepted, patches the
// extraction's field JSON with the corrected value.
func (s *reviewService) SubmitReview(ctx context.Context, review *reviews.ExtractionReview) (*reviews.ExtractionReview, error) {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.ReviewedAt.IsZero() {
		review.ReviewedAt = time.Now()
	}

	job, err := s.extractionRepository.GetByID(ctx, review.ExtractionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if job.Status != extraction.StatusCompleted {
		return nil, fmt.Errorf("extraction job '%s' is in status '%s' and cannot be reviewed", job.ID, job.Status)
	}

	if err := s.reviewRepository.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if review.Accepted {
		if err := s.patchFields(ctx, job, review); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &audit.Event{
		UserID:   review.ReviewerUserID,
		Action:   audit.ActionReviewSubmit,
		Resource: review.ExtractionID,
		Detail:   review.FieldName,
	})

	return review, nil
}

// patchFields applies an accepted correction to the job's field JSON and
// marks the job reviewed.
func (s *reviewService) patchFields(ctx context.Context, job *extraction.ExtractionJob, review *reviews.ExtractionReview) error {
	fields := map[string]string{}
	if len(job.Fields) > 0 {
		if err := json.Unmarshal(job.Fields, &fields); err != nil {
			return fmt.Errorf("failed to parse fields of job '%s': %w", job.ID, err)
		}
	}

	fields[review.FieldName] = review.CorrectedValue

	patched, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode patched fields: %w", err)
	}

	job.Fields = patched
	job.Reviewed = true

	if err := s.extractionRepository.UpdateByID(ctx, job); err != nil {
		return fmt.Errorf("failed to update extraction job with correction: %w", err)
	}

	s.logger.Info("Patched field ", review.FieldName, " on extraction job ", job.ID)
	return nil
}

// ListByExtraction retrieves all reviews for one extraction job
func (s *reviewService) ListByExtraction(ctx context.Context, extractionID string) ([]*reviews.ExtractionReview, error) {
	list, err := s.reviewRepository.ListByExtraction(ctx, extractionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return list, nil
}
