//go:build integration
// +build integration

package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	job := CreateTestExtractionJob(t, uuid.NewString())

	require.NoError(t, ctx.ExtractionRepo.Create(context.Background(), job))

	fetched, err := ctx.ExtractionRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, extraction.StatusPending, fetched.Status)
}

func TestExtractionSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	job := CreateTestExtractionJob(t, uuid.NewString())
	require.NoError(t, ctx.ExtractionRepo.Create(context.Background(), job))

	now := time.Now()
	job.Status = extraction.StatusCompleted
	job.Fields = json.RawMessage(`{"farm_name":"Hofgut Sonnenfeld","hectares":"42.5"}`)
	job.Confidence = 0.92
	job.ModelName = "gemini-2.0-flash"
	job.FinishedAt = &now
	require.NoError(t, ctx.ExtractionRepo.UpdateByID(context.Background(), job))

	fetched, err := ctx.ExtractionRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, extraction.StatusCompleted, fetched.Status)
	assert.InDelta(t, 0.92, fetched.Confidence, 0.001)
	assert.JSONEq(t, `{"farm_name":"Hofgut Sonnenfeld","hectares":"42.5"}`, string(fetched.Fields))
}

func TestExtractionRepository_List_NeedsReviewFilter(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	flagged := CreateTestExtractionJob(t, uuid.NewString())
	flagged.NeedsReview = true
	require.NoError(t, ctx.ExtractionRepo.Create(context.Background(), flagged))

	clean := CreateTestExtractionJob(t, uuid.NewString())
	require.NoError(t, ctx.ExtractionRepo.Create(context.Background(), clean))

	needsReview := true
	query := extraction.NewExtractionJobQuery()
	query.NeedsReview = &needsReview

	list, err := ctx.ExtractionRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, flagged.ID, list[0].ID)
}

func TestReviewSqliteRepository_CreateAndListByExtraction(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	extractionID := uuid.NewString()
	review := &reviews.ExtractionReview{
		ID:             uuid.NewString(),
		ExtractionID:   extractionID,
		ReviewerUserID: uuid.NewString(),
		FieldName:      "hectares",
		OriginalValue:  "42",
		CorrectedValue: "42.5",
		Accepted:       true,
		ReviewedAt:     time.Now(),
	}

	require.NoError(t, ctx.ReviewRepo.Create(context.Background(), review))

	list, err := ctx.ReviewRepo.ListByExtraction(context.Background(), extractionID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "hectares", list[0].FieldName)
}

func TestReviewSqliteRepository_ListAccepted(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	accepted := &reviews.ExtractionReview{
		ID:             uuid.NewString(),
		ExtractionID:   uuid.NewString(),
		ReviewerUserID: uuid.NewString(),
		FieldName:      "farm_name",
		OriginalValue:  "Hofgut",
		CorrectedValue: "Hofgut Sonnenfeld",
		Accepted:       true,
		ReviewedAt:     time.Now(),
	}
	rejected := &reviews.ExtractionReview{
		ID:             uuid.NewString(),
		ExtractionID:   uuid.NewString(),
		ReviewerUserID: uuid.NewString(),
		FieldName:      "region",
		OriginalValue:  "Bayern",
		CorrectedValue: "Bayern",
		Accepted:       false,
		ReviewedAt:     time.Now(),
	}

	require.NoError(t, ctx.ReviewRepo.Create(context.Background(), accepted))
	require.NoError(t, ctx.ReviewRepo.Create(context.Background(), rejected))

	list, err := ctx.ReviewRepo.ListAccepted(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "farm_name", list[0].FieldName)
}
