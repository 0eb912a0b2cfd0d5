package persistence

import (
	"context"
	"fmt"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAuditEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditEventRepository creates a new GORM-based EventRepository implementation
func NewGormAuditEventRepository(db *gorm.DB, logger logger.Logger) (audit.EventRepository, error) {
	return &gormAuditEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditEventRepository) Create(ctx context.Context, event *audit.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AuditEventModel{}
	model.FromDomain(event)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit event: %w", err)
	}

	return nil
}

func (r *gormAuditEventRepository) List(ctx context.Context, query *audit.EventQuery) ([]*audit.Event, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.AuditEventModel
	dbQuery := r.db.WithContext(ctx).Model(&models.AuditEventModel{})

	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.Action != "" {
		dbQuery = dbQuery.Where("action = ?", query.Action)
	}
	if !query.Since.IsZero() {
		dbQuery = dbQuery.Where("created_at >= ?", query.Since)
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit events: %w", err)
	}

	domainList := make([]*audit.Event, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
