package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/pkg/httputil"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// trainingExportFarmID segregates exported datasets from farm documents in
// blob storage.
const trainingExportFarmID = "training-exports"

// exportService implements the ExportService interface: accepted corrections
// become JSONL datasets and simulated training jobs.
type exportService struct {
	reviewRepository     reviews.ReviewRepository
	extractionRepository extraction.ExtractionRepository
	trainingRepository   training.TrainingJobRepository
	deploymentRepository training.DeploymentRepository
	storageConnector     documents.StorageConnector
	audit                audit.Recorder
	logger               logger.Logger
}

// NewExportService creates a new instance of ExportService
func NewExportService(
	reviewRepository reviews.ReviewRepository,
	extractionRepository extraction.ExtractionRepository,
	trainingRepository training.TrainingJobRepository,
	deploymentRepository training.DeploymentRepository,
	storageConnector documents.StorageConnector,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (training.ExportService, error) {
	return &exportService{
		reviewRepository:     reviewRepository,
		extractionRepository: extractionRepository,
		trainingRepository:   trainingRepository,
		deploymentRepository: deploymentRepository,
		storageConnector:     storageConnector,
		audit:                auditRecorder,
		logger:               logger,
	}, nil
}

// Export collects accepted corrections, writes a JSONL dataset to storage
// and records a TrainingJob for it.
func (s *exportService) Export(ctx context.Context) (*training.TrainingJob, error) {
	accepted, err := s.reviewRepository.ListAccepted(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if len(accepted) == 0 {
		return nil, fmt.Errorf("no accepted corrections to export")
	}

	dataset, err := s.encodeDataset(ctx, accepted)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("dataset-%s.jsonl", time.Now().UTC().Format("20060102-150405"))
	form, err := httputil.CreateForm(dataset, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset form: %w", err)
	}

	uploaded, err := s.storageConnector.Upload(ctx, form, trainingExportFarmID, trainingExportFarmID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload dataset: %w", err)
	}

	job := &training.TrainingJob{
		ID:           uuid.New().String(),
		DatasetPath:  uploaded[0].StoragePath,
		ExampleCount: len(accepted),
		Status:       training.StatusExported,
		CreatedAt:    time.Now(),
	}

	if err := s.trainingRepository.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save training job: %w", err)
	}

	s.audit.Record(ctx, &audit.Event{
		Action:   audit.ActionTrainingExport,
		Resource: job.ID,
		Detail:   fmt.Sprintf("%d examples to %s", job.ExampleCount, job.DatasetPath),
	})

	s.logger.Info("Exported ", job.ExampleCount, " training examples to ", job.DatasetPath)
	return job, nil
}

// encodeDataset serializes accepted corrections as JSONL training examples.
func (s *exportService) encodeDataset(ctx context.Context, accepted []*reviews.ExtractionReview) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)

	for _, review := range accepted {
		documentID := ""
		if job, err := s.extractionRepository.GetByID(ctx, review.ExtractionID); err == nil {
			documentID = job.DocumentID
		}

		example := training.TrainingExample{
			DocumentID:     documentID,
			FieldName:      review.FieldName,
			OriginalValue:  review.OriginalValue,
			CorrectedValue: review.CorrectedValue,
			ReviewedAt:     review.ReviewedAt.UTC().Format(time.RFC3339),
		}
		if err := encoder.Encode(example); err != nil {
			return nil, fmt.Errorf("failed to encode training example: %w", err)
		}
	}

	return buffer.Bytes(), nil
}

// AdvanceJob moves a job along the simulated training state machine. A job
// reaching the completed state yields an inactive deployment candidate.
func (s *exportService) AdvanceJob(ctx context.Context, jobID, nextStatus string) (*training.TrainingJob, error) {
	job, err := s.trainingRepository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !training.CanTransition(job.Status, nextStatus) {
		return nil, fmt.Errorf("illegal transition from '%s' to '%s'", job.Status, nextStatus)
	}

	job.Status = nextStatus
	if nextStatus == training.StatusCompleted || nextStatus == training.StatusFailed {
		now := time.Now()
		job.FinishedAt = &now
	}

	if err := s.trainingRepository.UpdateByID(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update training job: %w", err)
	}

	if nextStatus == training.StatusCompleted {
		deployment := &training.ModelDeployment{
			ID:            uuid.New().String(),
			TrainingJobID: job.ID,
			ModelName:     "field-extractor",
			Version:       fmt.Sprintf("v%s", job.CreatedAt.UTC().Format("20060102-150405")),
			Active:        false,
			DeployedAt:    time.Now(),
		}
		if err := s.deploymentRepository.Create(ctx, deployment); err != nil {
			return nil, fmt.Errorf("failed to create deployment candidate: %w", err)
		}
		s.logger.Info("Created deployment candidate ", deployment.ID, " for training job ", job.ID)
	}

	return job, nil
}

// GetJob retrieves a training job by ID
func (s *exportService) GetJob(ctx context.Context, jobID string) (*training.TrainingJob, error) {
	job, err := s.trainingRepository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return job, nil
}

// ListJobs retrieves all training jobs
func (s *exportService) ListJobs(ctx context.Context) ([]*training.TrainingJob, error) {
	jobs, err := s.trainingRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return jobs, nil
}

// ListDeployments retrieves all model deployments
func (s *exportService) ListDeployments(ctx context.Context) ([]*training.ModelDeployment, error) {
	deployments, err := s.deploymentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return deployments, nil
}

// ActivateDeployment marks one deployment active and deactivates the rest.
func (s *exportService) ActivateDeployment(ctx context.Context, deploymentID string) error {
	deployments, err := s.deploymentRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	var target *training.ModelDeployment
	for _, deployment := range deployments {
		if deployment.ID == deploymentID {
			target = deployment
			break
		}
	}
	if target == nil {
		return fmt.Errorf("deployment with ID %s not found", deploymentID)
	}

	for _, deployment := range deployments {
		active := deployment.ID == deploymentID
		if deployment.Active == active {
			continue
		}
		deployment.Active = active
		if err := s.deploymentRepository.UpdateByID(ctx, deployment); err != nil {
			return fmt.Errorf("failed to update deployment '%s': %w", deployment.ID, err)
		}
	}

	s.logger.Info("Activated deployment ", deploymentID)
	return nil
}
