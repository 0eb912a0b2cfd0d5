//go:build unit
// +build unit

package v1

import (
	"context"
	"mime/multipart"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/domain/training"

	"github.com/stretchr/testify/mock"
)

// MockFarmService is a mock implementation of FarmService
type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) Create(ctx context.Context, farm *farms.Farm) (*farms.Farm, error) {
	args := m.Called(ctx, farm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farms.Farm), args.Error(1)
}

func (m *MockFarmService) GetByID(ctx context.Context, farmID string) (*farms.Farm, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farms.Farm), args.Error(1)
}

func (m *MockFarmService) ListByOwner(ctx context.Context, ownerUserID string) ([]*farms.Farm, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*farms.Farm), args.Error(1)
}

func (m *MockFarmService) UpdateByID(ctx context.Context, farm *farms.Farm) (*farms.Farm, error) {
	args := m.Called(ctx, farm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farms.Farm), args.Error(1)
}

func (m *MockFarmService) DeleteByID(ctx context.Context, farmID string) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

// MockDocumentUploadService is a mock implementation of DocumentUploadService
type MockDocumentUploadService struct {
	mock.Mock
}

func (m *MockDocumentUploadService) Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*documents.DocumentMeta, error) {
	args := m.Called(ctx, form, farmID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.DocumentMeta), args.Error(1)
}

// MockDocumentMetadataService is a mock implementation of DocumentMetadataService
type MockDocumentMetadataService struct {
	mock.Mock
}

func (m *MockDocumentMetadataService) List(ctx context.Context, query *documents.DocumentMetaQuery) ([]*documents.DocumentMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.DocumentMeta), args.Error(1)
}

func (m *MockDocumentMetadataService) GetByID(ctx context.Context, documentID string) (*documents.DocumentMeta, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.DocumentMeta), args.Error(1)
}

func (m *MockDocumentMetadataService) DeleteByID(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockDocumentDownloadService is a mock implementation of DocumentDownloadService
type MockDocumentDownloadService struct {
	mock.Mock
}

func (m *MockDocumentDownloadService) DownloadByID(ctx context.Context, documentID string) ([]byte, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockExtractionService is a mock implementation of ExtractionService
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) StartJob(ctx context.Context, documentID string) (*extraction.ExtractionJob, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.ExtractionJob), args.Error(1)
}

func (m *MockExtractionService) ProcessJob(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.ExtractionJob), args.Error(1)
}

func (m *MockExtractionService) GetByID(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.ExtractionJob), args.Error(1)
}

func (m *MockExtractionService) List(ctx context.Context, query *extraction.ExtractionJobQuery) ([]*extraction.ExtractionJob, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*extraction.ExtractionJob), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, review *reviews.ExtractionReview) (*reviews.ExtractionReview, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.ExtractionReview), args.Error(1)
}

func (m *MockReviewService) ListByExtraction(ctx context.Context, extractionID string) ([]*reviews.ExtractionReview, error) {
	args := m.Called(ctx, extractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reviews.ExtractionReview), args.Error(1)
}

// MockSubsidyService is a mock implementation of SubsidyService
type MockSubsidyService struct {
	mock.Mock
}

func (m *MockSubsidyService) List(ctx context.Context, query *subsidies.SubsidyQuery) ([]*subsidies.Subsidy, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Subsidy), args.Error(1)
}

func (m *MockSubsidyService) GetByID(ctx context.Context, subsidyID string) (*subsidies.Subsidy, error) {
	args := m.Called(ctx, subsidyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidies.Subsidy), args.Error(1)
}

func (m *MockSubsidyService) MatchesForFarm(ctx context.Context, farmID string) ([]*subsidies.Subsidy, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Subsidy), args.Error(1)
}

// MockApplicationService is a mock implementation of ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Create(ctx context.Context, farmID, subsidyID string) (*subsidies.Application, error) {
	args := m.Called(ctx, farmID, subsidyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidies.Application), args.Error(1)
}

func (m *MockApplicationService) ListByFarm(ctx context.Context, farmID string) ([]*subsidies.Application, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Application), args.Error(1)
}

func (m *MockApplicationService) Transition(ctx context.Context, applicationID, nextStatus string) (*subsidies.Application, error) {
	args := m.Called(ctx, applicationID, nextStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidies.Application), args.Error(1)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context) (*training.TrainingJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.TrainingJob), args.Error(1)
}

func (m *MockExportService) AdvanceJob(ctx context.Context, jobID, nextStatus string) (*training.TrainingJob, error) {
	args := m.Called(ctx, jobID, nextStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.TrainingJob), args.Error(1)
}

func (m *MockExportService) GetJob(ctx context.Context, jobID string) (*training.TrainingJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.TrainingJob), args.Error(1)
}

func (m *MockExportService) ListJobs(ctx context.Context) ([]*training.TrainingJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.TrainingJob), args.Error(1)
}

func (m *MockExportService) ListDeployments(ctx context.Context) ([]*training.ModelDeployment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.ModelDeployment), args.Error(1)
}

func (m *MockExportService) ActivateDeployment(ctx context.Context, deploymentID string) error {
	args := m.Called(ctx, deploymentID)
	return args.Error(0)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, event *audit.Event) {
	m.Called(ctx, event)
}

func (m *MockAuditService) List(ctx context.Context, query *audit.EventQuery) ([]*audit.Event, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Event), args.Error(1)
}
