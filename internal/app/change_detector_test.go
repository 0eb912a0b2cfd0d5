//go:build unit
// +build unit

package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDetectorSettings() *config.ChangeDetectorSettings {
	return &config.ChangeDetectorSettings{
		RegistryPath:  "sources.yaml",
		RetryInterval: time.Millisecond,
		MaxRetries:    2,
	}
}

func newTestSource(code string) changedetect.Source {
	return changedetect.Source{
		Code:       code,
		Name:       "EU CAP open data",
		SummaryURL: "https://opendata.example/" + code + "/summary",
		RecordsURL: "https://opendata.example/" + code + "/records",
		Country:    "DE",
	}
}

func newTestRecord(sourceCode string) *subsidies.Subsidy {
	return &subsidies.Subsidy{
		ID:         uuid.New().String(),
		SourceCode: sourceCode,
		ExternalID: "cap-2026-001",
		Title:      "Eco-scheme direct payment",
		Country:    "DE",
		UpdatedAt:  time.Now(),
	}
}

func TestCheckSource_FirstObservationCountsAsChanged(t *testing.T) {
	sourceClient := new(MockSourceClient)
	sourceRegistry := new(MockSourceRegistry)
	snapshotRepository := new(MockSnapshotRepository)
	subsidyRepository := new(MockSubsidyRepository)
	log := testutil.SetupTestLogger(t)

	source := newTestSource("eu-cap")
	record := newTestRecord(source.Code)

	sourceClient.On("FetchSummary", mock.Anything, source).Return(changedetect.Summary{RecordCount: 1, ContentHash: ""}, nil)
	sourceClient.On("FetchRecords", mock.Anything, source).Return([]*subsidies.Subsidy{record}, nil)
	snapshotRepository.On("Get", mock.Anything, source.Code).Return(nil, nil)
	snapshotRepository.On("Put", mock.Anything, mock.MatchedBy(func(snapshot *changedetect.SourceSnapshot) bool {
		return snapshot.SourceCode == source.Code && snapshot.RecordCount == 1
	})).Return(nil)
	subsidyRepository.On("Upsert", mock.Anything, record).Return(nil)

	detector, err := NewChangeDetector(newDetectorSettings(), sourceClient, sourceRegistry, snapshotRepository, subsidyRepository, log)
	require.NoError(t, err)

	result, err := detector.CheckSource(context.Background(), source)

	require.NoError(t, err)
	assert.True(t, result.ChangesDetected)
	assert.Equal(t, 1, result.SyncedRecords)
	subsidyRepository.AssertExpectations(t)
	snapshotRepository.AssertExpectations(t)
}

func TestCheckSource_UnchangedSourceStillRefreshesSnapshot(t *testing.T) {
	sourceClient := new(MockSourceClient)
	sourceRegistry := new(MockSourceRegistry)
	snapshotRepository := new(MockSnapshotRepository)
	subsidyRepository := new(MockSubsidyRepository)
	log := testutil.SetupTestLogger(t)

	source := newTestSource("eu-cap")
	summary := changedetect.Summary{RecordCount: 7, ContentHash: ""}
	previous := &changedetect.SourceSnapshot{
		SourceCode:  source.Code,
		RecordCount: 7,
		CheckedAt:   time.Now().Add(-time.Hour),
	}

	sourceClient.On("FetchSummary", mock.Anything, source).Return(summary, nil)
	snapshotRepository.On("Get", mock.Anything, source.Code).Return(previous, nil)
	snapshotRepository.On("Put", mock.Anything, mock.MatchedBy(func(snapshot *changedetect.SourceSnapshot) bool {
		return snapshot.CheckedAt.After(previous.CheckedAt)
	})).Return(nil)

	detector, err := NewChangeDetector(newDetectorSettings(), sourceClient, sourceRegistry, snapshotRepository, subsidyRepository, log)
	require.NoError(t, err)

	result, err := detector.CheckSource(context.Background(), source)

	require.NoError(t, err)
	assert.False(t, result.ChangesDetected)
	assert.Zero(t, result.SyncedRecords)
	sourceClient.AssertNotCalled(t, "FetchRecords")
	subsidyRepository.AssertNotCalled(t, "Upsert")
	snapshotRepository.AssertExpectations(t)
}

func TestCheckSource_RetriesTransientSummaryFailures(t *testing.T) {
	sourceClient := new(MockSourceClient)
	sourceRegistry := new(MockSourceRegistry)
	snapshotRepository := new(MockSnapshotRepository)
	subsidyRepository := new(MockSubsidyRepository)
	log := testutil.SetupTestLogger(t)

	source := newTestSource("eu-cap")
	summary := changedetect.Summary{RecordCount: 3, ContentHash: ""}

	sourceClient.On("FetchSummary", mock.Anything, source).Return(changedetect.Summary{}, fmt.Errorf("503 service unavailable")).Twice()
	sourceClient.On("FetchSummary", mock.Anything, source).Return(summary, nil).Once()
	sourceClient.On("FetchRecords", mock.Anything, source).Return([]*subsidies.Subsidy{}, nil)
	snapshotRepository.On("Get", mock.Anything, source.Code).Return(nil, nil)
	snapshotRepository.On("Put", mock.Anything, mock.Anything).Return(nil)

	detector, err := NewChangeDetector(newDetectorSettings(), sourceClient, sourceRegistry, snapshotRepository, subsidyRepository, log)
	require.NoError(t, err)

	result, err := detector.CheckSource(context.Background(), source)

	require.NoError(t, err)
	assert.Equal(t, 3, result.RecordCount)
	sourceClient.AssertExpectations(t)
}

func TestCheckSource_GivesUpAfterMaxRetries(t *testing.T) {
	sourceClient := new(MockSourceClient)
	sourceRegistry := new(MockSourceRegistry)
	snapshotRepository := new(MockSnapshotRepository)
	subsidyRepository := new(MockSubsidyRepository)
	log := testutil.SetupTestLogger(t)

	source := newTestSource("eu-cap")
	sourceClient.On("FetchSummary", mock.Anything, source).Return(changedetect.Summary{}, fmt.Errorf("503 service unavailable"))

	detector, err := NewChangeDetector(newDetectorSettings(), sourceClient, sourceRegistry, snapshotRepository, subsidyRepository, log)
	require.NoError(t, err)

	result, err := detector.CheckSource(context.Background(), source)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to fetch summary")
	snapshotRepository.AssertNotCalled(t, "Put")
}

func TestCheckAll_SkipsFailingSources(t *testing.T) {
	sourceClient := new(MockSourceClient)
	sourceRegistry := new(MockSourceRegistry)
	snapshotRepository := new(MockSnapshotRepository)
	subsidyRepository := new(MockSubsidyRepository)
	log := testutil.SetupTestLogger(t)

	healthy := newTestSource("eu-cap")
	broken := newTestSource("de-laender")
	summary := changedetect.Summary{RecordCount: 2, ContentHash: ""}

	sourceRegistry.On("Sources").Return([]changedetect.Source{healthy, broken})
	sourceClient.On("FetchSummary", mock.Anything, healthy).Return(summary, nil)
	sourceClient.On("FetchSummary", mock.Anything, broken).Return(changedetect.Summary{}, fmt.Errorf("connection refused"))
	sourceClient.On("FetchRecords", mock.Anything, healthy).Return([]*subsidies.Subsidy{}, nil)
	snapshotRepository.On("Get", mock.Anything, healthy.Code).Return(nil, nil)
	snapshotRepository.On("Put", mock.Anything, mock.Anything).Return(nil)

	detector, err := NewChangeDetector(newDetectorSettings(), sourceClient, sourceRegistry, snapshotRepository, subsidyRepository, log)
	require.NoError(t, err)

	results, err := detector.CheckAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, healthy.Code, results[0].SourceCode)
}
