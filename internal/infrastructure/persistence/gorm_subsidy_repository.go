package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSubsidyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSubsidyRepository creates a new GORM-based SubsidyRepository implementation
func NewGormSubsidyRepository(db *gorm.DB, logger logger.Logger) (subsidies.SubsidyRepository, error) {
	return &gormSubsidyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSubsidyRepository) Upsert(ctx context.Context, subsidy *subsidies.Subsidy) error {
	if err := subsidy.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubsidyModel{}
	model.FromDomain(subsidy)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_code"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "agency", "country", "deadline",
			"min_funding", "max_funding", "min_hectares", "max_hectares",
			"eligibility", "content_hash", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subsidy: %w", err)
	}

	return nil
}

func (r *gormSubsidyRepository) List(ctx context.Context, query *subsidies.SubsidyQuery) ([]*subsidies.Subsidy, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.SubsidyModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SubsidyModel{})

	if query.SourceCode != "" {
		dbQuery = dbQuery.Where("source_code = ?", query.SourceCode)
	}
	if query.Country != "" {
		dbQuery = dbQuery.Where("country = ?", query.Country)
	}
	if query.OpenOnly {
		dbQuery = dbQuery.Where("deadline IS NULL OR deadline > ?", time.Now())
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Order("updated_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subsidies: %w", err)
	}

	domainList := make([]*subsidies.Subsidy, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSubsidyRepository) GetByID(ctx context.Context, subsidyID string) (*subsidies.Subsidy, error) {
	var model models.SubsidyModel
	if err := r.db.WithContext(ctx).Where("id = ?", subsidyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subsidy with ID %s not found", subsidyID)
		}
		return nil, fmt.Errorf("failed to fetch subsidy: %w", err)
	}
	return model.ToDomain(), nil
}

type gormApplicationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormApplicationRepository creates a new GORM-based ApplicationRepository implementation
func NewGormApplicationRepository(db *gorm.DB, logger logger.Logger) (subsidies.ApplicationRepository, error) {
	return &gormApplicationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormApplicationRepository) Create(ctx context.Context, application *subsidies.Application) error {
	if err := application.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ApplicationModel{}
	model.FromDomain(application)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	r.logger.Info("Created application with id ", application.ID)
	return nil
}

func (r *gormApplicationRepository) ListByFarm(ctx context.Context, farmID string) ([]*subsidies.Application, error) {
	var modelList []*models.ApplicationModel
	err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("created_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	domainList := make([]*subsidies.Application, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormApplicationRepository) GetByID(ctx context.Context, applicationID string) (*subsidies.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).Where("id = ?", applicationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application with ID %s not found", applicationID)
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormApplicationRepository) UpdateByID(ctx context.Context, application *subsidies.Application) error {
	if err := application.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ApplicationModel{}
	model.FromDomain(application)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	r.logger.Info("Updated application with id ", application.ID)
	return nil
}
