//go:build unit
// +build unit

package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/pkg/httputil"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredDocumentMeta(farmID, userID, name string, content []byte) *documents.DocumentMeta {
	checksum := sha256.Sum256(content)
	id := uuid.New().String()
	return &documents.DocumentMeta{
		ID:              id,
		FarmID:          farmID,
		UserID:          userID,
		Name:            name,
		Size:            int64(len(content)),
		ContentType:     "application/pdf",
		Checksum:        hex.EncodeToString(checksum[:]),
		StoragePath:     farmID + "/" + id + "/" + name,
		DateTimeCreated: time.Now(),
	}
}

func TestUpload_ScansThenStoresAndPersists(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	scanService := new(MockScanService)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	farmID := uuid.New().String()
	userID := uuid.New().String()
	content := []byte("%PDF-1.7 parcel register")
	form, err := testutil.CreateMultipleTestFilesForm(t, map[string][]byte{"parcel-register.pdf": content})
	require.NoError(t, err)

	stored := newStoredDocumentMeta(farmID, userID, "parcel-register.pdf", content)

	scanService.On("ScanFile", mock.Anything, "parcel-register.pdf", mock.Anything, content).Return(&scanning.ScanResult{
		Clean:      true,
		Vendor:     "clamav",
		Confidence: 0.98,
		ScannedAt:  time.Now(),
	}, scanning.DecisionScan, nil)
	storageConnector.On("Upload", mock.Anything, form, farmID, userID).Return([]*documents.DocumentMeta{stored}, nil)
	documentRepository.On("Create", mock.Anything, mock.MatchedBy(func(doc *documents.DocumentMeta) bool {
		return doc.ScanStatus == documents.ScanStatusClean && doc.ExtractionStatus == documents.ExtractionStatusNone
	})).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionDocumentUpload && event.Resource == stored.ID
	})).Return()

	service, err := NewDocumentUploadService(storageConnector, documentRepository, scanService, auditRecorder, log)
	require.NoError(t, err)

	docs, err := service.Upload(context.Background(), form, farmID, userID)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, documents.ScanStatusClean, docs[0].ScanStatus)
	documentRepository.AssertExpectations(t)
	auditRecorder.AssertExpectations(t)
}

func TestUpload_SkippedScanIsRecordedOnMetadata(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	scanService := new(MockScanService)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	farmID := uuid.New().String()
	userID := uuid.New().String()
	content := []byte("small note")
	form, err := testutil.CreateMultipleTestFilesForm(t, map[string][]byte{"note.txt": content})
	require.NoError(t, err)

	stored := newStoredDocumentMeta(farmID, userID, "note.txt", content)

	scanService.On("ScanFile", mock.Anything, "note.txt", mock.Anything, content).Return(&scanning.ScanResult{
		Clean:      true,
		Vendor:     "policy",
		Confidence: 1,
		ScannedAt:  time.Now(),
	}, scanning.DecisionSkip, nil)
	storageConnector.On("Upload", mock.Anything, form, farmID, userID).Return([]*documents.DocumentMeta{stored}, nil)
	documentRepository.On("Create", mock.Anything, mock.MatchedBy(func(doc *documents.DocumentMeta) bool {
		return doc.ScanStatus == documents.ScanStatusSkipped
	})).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.Anything).Return()

	service, err := NewDocumentUploadService(storageConnector, documentRepository, scanService, auditRecorder, log)
	require.NoError(t, err)

	docs, err := service.Upload(context.Background(), form, farmID, userID)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, documents.ScanStatusSkipped, docs[0].ScanStatus)
}

func TestUpload_SameNamedFilesKeepOwnScanStatus(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	scanService := new(MockScanService)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	farmID := uuid.New().String()
	userID := uuid.New().String()
	firstContent := []byte("small note")
	secondContent := []byte("%PDF-1.7 full parcel register, much longer")

	// Two parts with the same filename in one batch
	form, err := httputil.CreateMultipleFilesForm([][]byte{firstContent, secondContent}, []string{"register.pdf", "register.pdf"})
	require.NoError(t, err)

	firstStored := newStoredDocumentMeta(farmID, userID, "register.pdf", firstContent)
	secondStored := newStoredDocumentMeta(farmID, userID, "register.pdf", secondContent)

	scanService.On("ScanFile", mock.Anything, "register.pdf", mock.Anything, firstContent).Return(&scanning.ScanResult{
		Clean:      true,
		Vendor:     "policy",
		Confidence: 1,
		ScannedAt:  time.Now(),
	}, scanning.DecisionSkip, nil)
	scanService.On("ScanFile", mock.Anything, "register.pdf", mock.Anything, secondContent).Return(&scanning.ScanResult{
		Clean:      true,
		Vendor:     "clamav",
		Confidence: 0.98,
		ScannedAt:  time.Now(),
	}, scanning.DecisionScan, nil)
	storageConnector.On("Upload", mock.Anything, form, farmID, userID).Return([]*documents.DocumentMeta{firstStored, secondStored}, nil)
	documentRepository.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.Anything).Return()

	service, err := NewDocumentUploadService(storageConnector, documentRepository, scanService, auditRecorder, log)
	require.NoError(t, err)

	docs, err := service.Upload(context.Background(), form, farmID, userID)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, documents.ScanStatusSkipped, docs[0].ScanStatus)
	assert.Equal(t, documents.ScanStatusClean, docs[1].ScanStatus)
}

func TestUpload_InfectedFileRejectsWholeBatch(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	scanService := new(MockScanService)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	content := []byte("X5O!P%@AP[4\\PZX54(P^)7CC)7}$EICAR")
	form, err := testutil.CreateMultipleTestFilesForm(t, map[string][]byte{"dropper.pdf": content})
	require.NoError(t, err)

	scanService.On("ScanFile", mock.Anything, "dropper.pdf", mock.Anything, content).Return(&scanning.ScanResult{
		Clean:      false,
		Threats:    []string{"Eicar-Test-Signature"},
		Vendor:     "clamav",
		Confidence: 1,
		ScannedAt:  time.Now(),
	}, scanning.DecisionScan, nil)

	service, err := NewDocumentUploadService(storageConnector, documentRepository, scanService, auditRecorder, log)
	require.NoError(t, err)

	docs, err := service.Upload(context.Background(), form, uuid.New().String(), uuid.New().String())

	require.Error(t, err)
	assert.Nil(t, docs)
	assert.Contains(t, err.Error(), "infected")
	storageConnector.AssertNotCalled(t, "Upload")
	documentRepository.AssertNotCalled(t, "Create")
}

func TestUpload_EmptyFormIsRejected(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	scanService := new(MockScanService)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	service, err := NewDocumentUploadService(storageConnector, documentRepository, scanService, auditRecorder, log)
	require.NoError(t, err)

	docs, err := service.Upload(context.Background(), testutil.CreateEmptyForm(), uuid.New().String(), uuid.New().String())

	require.Error(t, err)
	assert.Nil(t, docs)
	assert.Contains(t, err.Error(), "no files provided")
}

func TestDeleteByID_RemovesMetadataAndBlob(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	doc := newStoredDocumentMeta(uuid.New().String(), uuid.New().String(), "parcel-register.pdf", []byte("content"))
	doc.ScanStatus = documents.ScanStatusClean
	doc.ExtractionStatus = documents.ExtractionStatusNone

	documentRepository.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	documentRepository.On("DeleteByID", mock.Anything, doc.ID).Return(nil)
	storageConnector.On("Delete", mock.Anything, doc.StoragePath).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionDocumentDelete && event.Resource == doc.ID
	})).Return()

	service, err := NewDocumentMetadataService(documentRepository, storageConnector, auditRecorder, log)
	require.NoError(t, err)

	err = service.DeleteByID(context.Background(), doc.ID)

	require.NoError(t, err)
	storageConnector.AssertExpectations(t)
	auditRecorder.AssertExpectations(t)
}

func TestDownloadByID_ReturnsContentAndAudits(t *testing.T) {
	storageConnector := new(MockStorageConnector)
	documentRepository := new(MockDocumentRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	content := []byte("%PDF-1.7 parcel register")
	doc := newStoredDocumentMeta(uuid.New().String(), uuid.New().String(), "parcel-register.pdf", content)

	documentRepository.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storageConnector.On("Download", mock.Anything, doc.StoragePath).Return(content, nil)
	auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionDocumentDownload && event.Resource == doc.ID
	})).Return()

	service, err := NewDocumentDownloadService(storageConnector, documentRepository, auditRecorder, log)
	require.NoError(t, err)

	downloaded, err := service.DownloadByID(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, content, downloaded)
	auditRecorder.AssertExpectations(t)
}
