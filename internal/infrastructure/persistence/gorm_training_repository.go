package persistence

import (
	"context"
	"errors"
	"fmt"

	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTrainingJobRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTrainingJobRepository creates a new GORM-based TrainingJobRepository implementation
func NewGormTrainingJobRepository(db *gorm.DB, logger logger.Logger) (training.TrainingJobRepository, error) {
	return &gormTrainingJobRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTrainingJobRepository) Create(ctx context.Context, job *training.TrainingJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TrainingJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create training job: %w", err)
	}

	r.logger.Info("Created training job with id ", job.ID)
	return nil
}

func (r *gormTrainingJobRepository) List(ctx context.Context) ([]*training.TrainingJob, error) {
	var modelList []*models.TrainingJobModel
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training jobs: %w", err)
	}

	domainList := make([]*training.TrainingJob, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormTrainingJobRepository) GetByID(ctx context.Context, jobID string) (*training.TrainingJob, error) {
	var model models.TrainingJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("training job with ID %s not found", jobID)
		}
		return nil, fmt.Errorf("failed to fetch training job: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTrainingJobRepository) UpdateByID(ctx context.Context, job *training.TrainingJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TrainingJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update training job: %w", err)
	}

	r.logger.Info("Updated training job with id ", job.ID)
	return nil
}

type gormDeploymentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDeploymentRepository creates a new GORM-based DeploymentRepository implementation
func NewGormDeploymentRepository(db *gorm.DB, logger logger.Logger) (training.DeploymentRepository, error) {
	return &gormDeploymentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDeploymentRepository) Create(ctx context.Context, deployment *training.ModelDeployment) error {
	if err := deployment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DeploymentModel{}
	model.FromDomain(deployment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create deployment: %w", err)
	}

	r.logger.Info("Created model deployment with id ", deployment.ID)
	return nil
}

func (r *gormDeploymentRepository) List(ctx context.Context) ([]*training.ModelDeployment, error) {
	var modelList []*models.DeploymentModel
	err := r.db.WithContext(ctx).
		Order("deployed_at desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployments: %w", err)
	}

	domainList := make([]*training.ModelDeployment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormDeploymentRepository) GetByID(ctx context.Context, deploymentID string) (*training.ModelDeployment, error) {
	var model models.DeploymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", deploymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deployment with ID %s not found", deploymentID)
		}
		return nil, fmt.Errorf("failed to fetch deployment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormDeploymentRepository) UpdateByID(ctx context.Context, deployment *training.ModelDeployment) error {
	if err := deployment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DeploymentModel{}
	model.FromDomain(deployment)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update deployment: %w", err)
	}

	r.logger.Info("Updated model deployment with id ", deployment.ID)
	return nil
}
