package persistence

import (
	"context"
	"errors"
	"fmt"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSnapshotRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSnapshotRepository creates a new GORM-based SnapshotRepository implementation
func NewGormSnapshotRepository(db *gorm.DB, logger logger.Logger) (changedetect.SnapshotRepository, error) {
	return &gormSnapshotRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSnapshotRepository) Get(ctx context.Context, sourceCode string) (*changedetect.SourceSnapshot, error) {
	var model models.SourceSnapshotModel
	if err := r.db.WithContext(ctx).Where("source_code = ?", sourceCode).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Never observed yet; callers treat nil as first observation
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSnapshotRepository) Put(ctx context.Context, snapshot *changedetect.SourceSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SourceSnapshotModel{}
	model.FromDomain(snapshot)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	r.logger.Info("Stored snapshot for source ", snapshot.SourceCode)
	return nil
}
