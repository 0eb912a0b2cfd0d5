//go:build unit
// +build unit

package app

import (
	"context"
	"mime/multipart"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/domain/training"

	"github.com/stretchr/testify/mock"
)

// MockScanBackend is a mock implementation of ScanBackend
type MockScanBackend struct {
	mock.Mock
}

func (m *MockScanBackend) Scan(ctx context.Context, fileName string, content []byte) (*scanning.ScanResult, error) {
	args := m.Called(ctx, fileName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scanning.ScanResult), args.Error(1)
}

func (m *MockScanBackend) Vendor() string {
	args := m.Called()
	return args.String(0)
}

// MockScanService is a mock implementation of ScanService
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) ScanFile(ctx context.Context, fileName, contentType string, content []byte) (*scanning.ScanResult, scanning.Decision, error) {
	args := m.Called(ctx, fileName, contentType, content)
	if args.Get(0) == nil {
		return nil, args.Get(1).(scanning.Decision), args.Error(2)
	}
	return args.Get(0).(*scanning.ScanResult), args.Get(1).(scanning.Decision), args.Error(2)
}

// MockAuditRecorder is a mock implementation of audit.Recorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, event *audit.Event) {
	m.Called(ctx, event)
}

// MockStorageConnector is a mock implementation of StorageConnector
type MockStorageConnector struct {
	mock.Mock
}

func (m *MockStorageConnector) Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*documents.DocumentMeta, error) {
	args := m.Called(ctx, form, farmID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.DocumentMeta), args.Error(1)
}

func (m *MockStorageConnector) Download(ctx context.Context, storagePath string) ([]byte, error) {
	args := m.Called(ctx, storagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorageConnector) Delete(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}

// MockDocumentRepository is a mock implementation of DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *documents.DocumentMeta) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) List(ctx context.Context, query *documents.DocumentMetaQuery) ([]*documents.DocumentMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.DocumentMeta), args.Error(1)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, documentID string) (*documents.DocumentMeta, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.DocumentMeta), args.Error(1)
}

func (m *MockDocumentRepository) UpdateByID(ctx context.Context, doc *documents.DocumentMeta) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteByID(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockExtractionRepository is a mock implementation of ExtractionRepository
type MockExtractionRepository struct {
	mock.Mock
}

func (m *MockExtractionRepository) Create(ctx context.Context, job *extraction.ExtractionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExtractionRepository) List(ctx context.Context, query *extraction.ExtractionJobQuery) ([]*extraction.ExtractionJob, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*extraction.ExtractionJob), args.Error(1)
}

func (m *MockExtractionRepository) GetByID(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.ExtractionJob), args.Error(1)
}

func (m *MockExtractionRepository) UpdateByID(ctx context.Context, job *extraction.ExtractionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockFieldExtractor is a mock implementation of FieldExtractor
type MockFieldExtractor struct {
	mock.Mock
}

func (m *MockFieldExtractor) ExtractFields(ctx context.Context, text string, documentName string) (*extraction.FieldResult, error) {
	args := m.Called(ctx, text, documentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.FieldResult), args.Error(1)
}

// MockOCRProcessor is a mock implementation of OCRProcessor
type MockOCRProcessor struct {
	mock.Mock
}

func (m *MockOCRProcessor) Text(ctx context.Context, content []byte) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *reviews.ExtractionReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByExtraction(ctx context.Context, extractionID string) ([]*reviews.ExtractionReview, error) {
	args := m.Called(ctx, extractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reviews.ExtractionReview), args.Error(1)
}

func (m *MockReviewRepository) ListAccepted(ctx context.Context) ([]*reviews.ExtractionReview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reviews.ExtractionReview), args.Error(1)
}

// MockTrainingJobRepository is a mock implementation of TrainingJobRepository
type MockTrainingJobRepository struct {
	mock.Mock
}

func (m *MockTrainingJobRepository) Create(ctx context.Context, job *training.TrainingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockTrainingJobRepository) List(ctx context.Context) ([]*training.TrainingJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepository) GetByID(ctx context.Context, jobID string) (*training.TrainingJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepository) UpdateByID(ctx context.Context, job *training.TrainingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) Create(ctx context.Context, deployment *training.ModelDeployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) List(ctx context.Context) ([]*training.ModelDeployment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.ModelDeployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetByID(ctx context.Context, deploymentID string) (*training.ModelDeployment, error) {
	args := m.Called(ctx, deploymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.ModelDeployment), args.Error(1)
}

func (m *MockDeploymentRepository) UpdateByID(ctx context.Context, deployment *training.ModelDeployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockFarmRepository is a mock implementation of FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *farms.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*farms.Farm, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*farms.Farm), args.Error(1)
}

func (m *MockFarmRepository) GetByID(ctx context.Context, farmID string) (*farms.Farm, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farms.Farm), args.Error(1)
}

func (m *MockFarmRepository) UpdateByID(ctx context.Context, farm *farms.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) DeleteByID(ctx context.Context, farmID string) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

// MockSubsidyRepository is a mock implementation of SubsidyRepository
type MockSubsidyRepository struct {
	mock.Mock
}

func (m *MockSubsidyRepository) Upsert(ctx context.Context, subsidy *subsidies.Subsidy) error {
	args := m.Called(ctx, subsidy)
	return args.Error(0)
}

func (m *MockSubsidyRepository) List(ctx context.Context, query *subsidies.SubsidyQuery) ([]*subsidies.Subsidy, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Subsidy), args.Error(1)
}

func (m *MockSubsidyRepository) GetByID(ctx context.Context, subsidyID string) (*subsidies.Subsidy, error) {
	args := m.Called(ctx, subsidyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidies.Subsidy), args.Error(1)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *subsidies.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListByFarm(ctx context.Context, farmID string) ([]*subsidies.Application, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, applicationID string) (*subsidies.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subsidies.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateByID(ctx context.Context, application *subsidies.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

// MockSourceClient is a mock implementation of SourceClient
type MockSourceClient struct {
	mock.Mock
}

func (m *MockSourceClient) FetchSummary(ctx context.Context, source changedetect.Source) (changedetect.Summary, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(changedetect.Summary), args.Error(1)
}

func (m *MockSourceClient) FetchRecords(ctx context.Context, source changedetect.Source) ([]*subsidies.Subsidy, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subsidies.Subsidy), args.Error(1)
}

// MockSourceRegistry is a mock implementation of SourceRegistry
type MockSourceRegistry struct {
	mock.Mock
}

func (m *MockSourceRegistry) Sources() []changedetect.Source {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]changedetect.Source)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Get(ctx context.Context, sourceCode string) (*changedetect.SourceSnapshot, error) {
	args := m.Called(ctx, sourceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changedetect.SourceSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Put(ctx context.Context, snapshot *changedetect.SourceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}
