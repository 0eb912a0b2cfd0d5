//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompletedExtractionJob() *extraction.ExtractionJob {
	return &extraction.ExtractionJob{
		ID:         uuid.New().String(),
		DocumentID: uuid.New().String(),
		Status:     extraction.StatusCompleted,
		Fields:     json.RawMessage(`{"farm_name":"Hofgut Sonnenfelt","hectares":"42.5"}`),
		Confidence: 0.91,
		StartedAt:  time.Now(),
	}
}

func newTestReview(extractionID string, accepted bool) *reviews.ExtractionReview {
	return &reviews.ExtractionReview{
		ExtractionID:   extractionID,
		ReviewerUserID: uuid.New().String(),
		FieldName:      "farm_name",
		OriginalValue:  "Hofgut Sonnenfelt",
		CorrectedValue: "Hofgut Sonnenfeld",
		Accepted:       accepted,
	}
}

func TestSubmitReview_AcceptedCorrectionPatchesFields(t *testing.T) {
	reviewRepository := new(MockReviewRepository)
	extractionRepository := new(MockExtractionRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	job := newCompletedExtractionJob()
	review := newTestReview(job.ID, true)

	extractionRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	reviewRepository.On("Create", mock.Anything, review).Return(nil)
	extractionRepository.On("UpdateByID", mock.Anything, mock.MatchedBy(func(updated *extraction.ExtractionJob) bool {
		var fields map[string]string
		if err := json.Unmarshal(updated.Fields, &fields); err != nil {
			return false
		}
		return updated.Reviewed && fields["farm_name"] == "Hofgut Sonnenfeld" && fields["hectares"] == "42.5"
	})).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionReviewSubmit && event.Resource == job.ID
	})).Return()

	service, err := NewReviewService(reviewRepository, extractionRepository, auditRecorder, log)
	require.NoError(t, err)

	stored, err := service.SubmitReview(context.Background(), review)

	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.ReviewedAt.IsZero())
	extractionRepository.AssertExpectations(t)
	auditRecorder.AssertExpectations(t)
}

func TestSubmitReview_RejectedCorrectionLeavesFieldsUntouched(t *testing.T) {
	reviewRepository := new(MockReviewRepository)
	extractionRepository := new(MockExtractionRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	job := newCompletedExtractionJob()
	review := newTestReview(job.ID, false)

	extractionRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	reviewRepository.On("Create", mock.Anything, review).Return(nil)
	auditRecorder.On("Record", mock.Anything, mock.Anything).Return()

	service, err := NewReviewService(reviewRepository, extractionRepository, auditRecorder, log)
	require.NoError(t, err)

	_, err = service.SubmitReview(context.Background(), review)

	require.NoError(t, err)
	extractionRepository.AssertNotCalled(t, "UpdateByID")
}

func TestSubmitReview_RejectsUnfinishedJob(t *testing.T) {
	reviewRepository := new(MockReviewRepository)
	extractionRepository := new(MockExtractionRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	job := newCompletedExtractionJob()
	job.Status = extraction.StatusExtracting
	review := newTestReview(job.ID, true)

	extractionRepository.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	service, err := NewReviewService(reviewRepository, extractionRepository, auditRecorder, log)
	require.NoError(t, err)

	stored, err := service.SubmitReview(context.Background(), review)

	require.Error(t, err)
	assert.Nil(t, stored)
	assert.Contains(t, err.Error(), "cannot be reviewed")
	reviewRepository.AssertNotCalled(t, "Create")
}

func TestListByExtraction(t *testing.T) {
	reviewRepository := new(MockReviewRepository)
	extractionRepository := new(MockExtractionRepository)
	auditRecorder := new(MockAuditRecorder)
	log := testutil.SetupTestLogger(t)

	extractionID := uuid.New().String()
	expected := []*reviews.ExtractionReview{newTestReview(extractionID, true)}
	reviewRepository.On("ListByExtraction", mock.Anything, extractionID).Return(expected, nil)

	service, err := NewReviewService(reviewRepository, extractionRepository, auditRecorder, log)
	require.NoError(t, err)

	list, err := service.ListByExtraction(context.Background(), extractionID)

	require.NoError(t, err)
	assert.Equal(t, expected, list)
}
