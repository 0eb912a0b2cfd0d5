package persistence

import (
	"context"
	"errors"
	"fmt"

	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormFarmRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormFarmRepository creates a new GORM-based FarmRepository implementation
func NewGormFarmRepository(db *gorm.DB, logger logger.Logger) (farms.FarmRepository, error) {
	return &gormFarmRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormFarmRepository) Create(ctx context.Context, farm *farms.Farm) error {
	if err := farm.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FarmModel{}
	model.FromDomain(farm)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create farm: %w", err)
	}

	r.logger.Info("Created farm with id ", farm.ID)
	return nil
}

func (r *gormFarmRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*farms.Farm, error) {
	var modelList []*models.FarmModel
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch farms: %w", err)
	}

	domainList := make([]*farms.Farm, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormFarmRepository) GetByID(ctx context.Context, farmID string) (*farms.Farm, error) {
	var model models.FarmModel
	if err := r.db.WithContext(ctx).Where("id = ?", farmID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("farm with ID %s not found", farmID)
		}
		return nil, fmt.Errorf("failed to fetch farm: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormFarmRepository) UpdateByID(ctx context.Context, farm *farms.Farm) error {
	if err := farm.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FarmModel{}
	model.FromDomain(farm)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update farm: %w", err)
	}

	r.logger.Info("Updated farm with id ", farm.ID)
	return nil
}

func (r *gormFarmRepository) DeleteByID(ctx context.Context, farmID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", farmID).Delete(&models.FarmModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}

	r.logger.Info("Deleted farm with id ", farmID)
	return nil
}
