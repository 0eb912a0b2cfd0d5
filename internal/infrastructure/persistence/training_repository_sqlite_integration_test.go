//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingJobSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	job := &training.TrainingJob{
		ID:           uuid.NewString(),
		DatasetPath:  "training/datasets/2026-08-26.jsonl",
		ExampleCount: 57,
		Status:       training.StatusExported,
		CreatedAt:    time.Now(),
	}

	require.NoError(t, ctx.TrainingRepo.Create(context.Background(), job))

	fetched, err := ctx.TrainingRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, training.StatusExported, fetched.Status)
	assert.Equal(t, 57, fetched.ExampleCount)
}

func TestTrainingJobSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	job := &training.TrainingJob{
		ID:          uuid.NewString(),
		DatasetPath: "training/datasets/2026-08-26.jsonl",
		Status:      training.StatusExported,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, ctx.TrainingRepo.Create(context.Background(), job))

	job.Status = training.StatusQueued
	require.NoError(t, ctx.TrainingRepo.UpdateByID(context.Background(), job))

	fetched, err := ctx.TrainingRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, training.StatusQueued, fetched.Status)
}

func TestDeploymentSqliteRepository_CreateAndList(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	deployment := &training.ModelDeployment{
		ID:            uuid.NewString(),
		TrainingJobID: uuid.NewString(),
		ModelName:     "field-extractor",
		Version:       "v3",
		Active:        false,
		DeployedAt:    time.Now(),
	}
	require.NoError(t, ctx.DeploymentRepo.Create(context.Background(), deployment))

	list, err := ctx.DeploymentRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "field-extractor", list[0].ModelName)
}

func TestDeploymentSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	deployment := &training.ModelDeployment{
		ID:            uuid.NewString(),
		TrainingJobID: uuid.NewString(),
		ModelName:     "field-extractor",
		Version:       "v3",
		Active:        false,
		DeployedAt:    time.Now(),
	}
	require.NoError(t, ctx.DeploymentRepo.Create(context.Background(), deployment))

	deployment.Active = true
	require.NoError(t, ctx.DeploymentRepo.UpdateByID(context.Background(), deployment))

	fetched, err := ctx.DeploymentRepo.GetByID(context.Background(), deployment.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Active)
}
