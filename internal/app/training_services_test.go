//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T) (*MockReviewRepository, *MockExtractionRepository, *MockTrainingJobRepository, *MockDeploymentRepository, *MockStorageConnector, *MockAuditRecorder, training.ExportService) {
	t.Helper()

	reviewRepository := new(MockReviewRepository)
	extractionRepository := new(MockExtractionRepository)
	trainingRepository := new(MockTrainingJobRepository)
	deploymentRepository := new(MockDeploymentRepository)
	storageConnector := new(MockStorageConnector)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	service, err := NewExportService(reviewRepository, extractionRepository, trainingRepository, deploymentRepository, storageConnector, auditRecorder, log)
	require.NoError(t, err)

	return reviewRepository, extractionRepository, trainingRepository, deploymentRepository, storageConnector, auditRecorder, service
}

func TestExport_WritesDatasetAndCreatesJob(t *testing.T) {
	reviewRepository, extractionRepository, trainingRepository, _, storageConnector, auditRecorder, service := newExportService(t)

	job := newCompletedExtractionJob()
	accepted := []*reviews.ExtractionReview{
		{
			ID:             uuid.New().String(),
			ExtractionID:   job.ID,
			ReviewerUserID: uuid.New().String(),
			FieldName:      "farm_name",
			OriginalValue:  "Hofgut Sonnenfelt",
			CorrectedValue: "Hofgut Sonnenfeld",
			Accepted:       true,
			ReviewedAt:     time.Now(),
		},
	}

	reviewRepository.On("ListAccepted", mock.Anything).Return(accepted, nil)
	extractionRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	storageConnector.On("Upload", mock.Anything, mock.Anything, trainingExportFarmID, trainingExportFarmID).Return([]*documents.DocumentMeta{
		{StoragePath: "training-exports/dataset.jsonl"},
	}, nil)
	trainingRepository.On("Create", mock.Anything, mock.MatchedBy(func(created *training.TrainingJob) bool {
		return created.Status == training.StatusExported && created.ExampleCount == 1 && created.DatasetPath == "training-exports/dataset.jsonl"
	})).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionTrainingExport
	})).Return()

	created, err := service.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, training.StatusExported, created.Status)
	assert.Equal(t, 1, created.ExampleCount)
	trainingRepository.AssertExpectations(t)
	auditRecorder.AssertExpectations(t)
}

func TestExport_FailsWithoutAcceptedCorrections(t *testing.T) {
	reviewRepository, _, _, _, storageConnector, _, service := newExportService(t)

	reviewRepository.On("ListAccepted", mock.Anything).Return([]*reviews.ExtractionReview{}, nil)

	created, err := service.Export(context.Background())

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "no accepted corrections")
	storageConnector.AssertNotCalled(t, "Upload")
}

func TestAdvanceJob_CompletionCreatesDeploymentCandidate(t *testing.T) {
	_, _, trainingRepository, deploymentRepository, _, _, service := newExportService(t)

	job := &training.TrainingJob{
		ID:          uuid.New().String(),
		DatasetPath: "training-exports/dataset.jsonl",
		Status:      training.StatusRunning,
		CreatedAt:   time.Now(),
	}

	trainingRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	trainingRepository.On("UpdateByID", mock.Anything, mock.MatchedBy(func(updated *training.TrainingJob) bool {
		return updated.Status == training.StatusCompleted && updated.FinishedAt != nil
	})).Return(nil)
	deploymentRepository.On("Create", mock.Anything, mock.MatchedBy(func(deployment *training.ModelDeployment) bool {
		return deployment.TrainingJobID == job.ID && deployment.ModelName == "field-extractor" && !deployment.Active
	})).Return(nil)

	advanced, err := service.AdvanceJob(context.Background(), job.ID, training.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, training.StatusCompleted, advanced.Status)
	deploymentRepository.AssertExpectations(t)
}

func TestAdvanceJob_RejectsIllegalTransition(t *testing.T) {
	_, _, trainingRepository, deploymentRepository, _, _, service := newExportService(t)

	job := &training.TrainingJob{
		ID:          uuid.New().String(),
		DatasetPath: "training-exports/dataset.jsonl",
		Status:      training.StatusExported,
		CreatedAt:   time.Now(),
	}

	trainingRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	advanced, err := service.AdvanceJob(context.Background(), job.ID, training.StatusCompleted)

	require.Error(t, err)
	assert.Nil(t, advanced)
	assert.Contains(t, err.Error(), "illegal transition")
	trainingRepository.AssertNotCalled(t, "UpdateByID")
	deploymentRepository.AssertNotCalled(t, "Create")
}

func TestActivateDeployment_DeactivatesTheRest(t *testing.T) {
	_, _, _, deploymentRepository, _, _, service := newExportService(t)

	current := &training.ModelDeployment{
		ID:            uuid.New().String(),
		TrainingJobID: uuid.New().String(),
		ModelName:     "field-extractor",
		Version:       "v20260801-120000",
		Active:        true,
		DeployedAt:    time.Now().Add(-24 * time.Hour),
	}
	candidate := &training.ModelDeployment{
		ID:            uuid.New().String(),
		TrainingJobID: uuid.New().String(),
		ModelName:     "field-extractor",
		Version:       "v20260825-090000",
		Active:        false,
		DeployedAt:    time.Now(),
	}

	deploymentRepository.On("List", mock.Anything).Return([]*training.ModelDeployment{current, candidate}, nil)
	deploymentRepository.On("UpdateByID", mock.Anything, mock.MatchedBy(func(d *training.ModelDeployment) bool {
		return d.ID == current.ID && !d.Active
	})).Return(nil)
	deploymentRepository.On("UpdateByID", mock.Anything, mock.MatchedBy(func(d *training.ModelDeployment) bool {
		return d.ID == candidate.ID && d.Active
	})).Return(nil)

	err := service.ActivateDeployment(context.Background(), candidate.ID)

	require.NoError(t, err)
	deploymentRepository.AssertExpectations(t)
}

func TestActivateDeployment_UnknownDeployment(t *testing.T) {
	_, _, _, deploymentRepository, _, _, service := newExportService(t)

	deploymentRepository.On("List", mock.Anything).Return([]*training.ModelDeployment{}, nil)

	err := service.ActivateDeployment(context.Background(), uuid.New().String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	deploymentRepository.AssertNotCalled(t, "UpdateByID")
}
