package persistence

import (
	"context"
	"errors"
	"fmt"

	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormDocumentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDocumentRepository creates a new GORM-based DocumentRepository implementation
func NewGormDocumentRepository(db *gorm.DB, logger logger.Logger) (documents.DocumentRepository, error) {
	return &gormDocumentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDocumentRepository) Create(ctx context.Context, doc *documents.DocumentMeta) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DocumentModel{}
	model.FromDomain(doc)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Info("Created document metadata with id ", doc.ID)
	return nil
}

func (r *gormDocumentRepository) List(ctx context.Context, query *documents.DocumentMetaQuery) ([]*documents.DocumentMeta, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.DocumentModel
	dbQuery := r.db.WithContext(ctx).Model(&models.DocumentModel{})

	if query.FarmID != "" {
		dbQuery = dbQuery.Where("farm_id = ?", query.FarmID)
	}
	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.ContentType != "" {
		dbQuery = dbQuery.Where("content_type = ?", query.ContentType)
	}
	if query.ScanStatus != "" {
		dbQuery = dbQuery.Where("scan_status = ?", query.ScanStatus)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	domainList := make([]*documents.DocumentMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormDocumentRepository) GetByID(ctx context.Context, documentID string) (*documents.DocumentMeta, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document with ID %s not found", documentID)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormDocumentRepository) UpdateByID(ctx context.Context, doc *documents.DocumentMeta) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DocumentModel{}
	model.FromDomain(doc)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	r.logger.Info("Updated document metadata with id ", doc.ID)
	return nil
}

func (r *gormDocumentRepository) DeleteByID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).Delete(&models.DocumentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	r.logger.Info("Deleted document metadata with id ", documentID)
	return nil
}
