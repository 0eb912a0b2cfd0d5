package persistence

import (
	"context"
	"errors"
	"fmt"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/infrastructure/persistence/models"
	"subsidy_pilot_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormExtractionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormExtractionRepository creates a new GORM-based ExtractionRepository implementation
func NewGormExtractionRepository(db *gorm.DB, logger logger.Logger) (extraction.ExtractionRepository, error) {
	return &gormExtractionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormExtractionRepository) Create(ctx context.Context, job *extraction.ExtractionJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ExtractionJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create extraction job: %w", err)
	}

	r.logger.Info("Created extraction job with id ", job.ID)
	return nil
}

func (r *gormExtractionRepository) List(ctx context.Context, query *extraction.ExtractionJobQuery) ([]*extraction.ExtractionJob, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ExtractionJobModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ExtractionJobModel{})

	if query.DocumentID != "" {
		dbQuery = dbQuery.Where("document_id = ?", query.DocumentID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.NeedsReview != nil {
		dbQuery = dbQuery.Where("needs_review = ?", *query.NeedsReview)
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Order("started_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch extraction jobs: %w", err)
	}

	domainList := make([]*extraction.ExtractionJob, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormExtractionRepository) GetByID(ctx context.Context, jobID string) (*extraction.ExtractionJob, error) {
	var model models.ExtractionJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("extraction job with ID %s not found", jobID)
		}
		return nil, fmt.Errorf("failed to fetch extraction job: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormExtractionRepository) UpdateByID(ctx context.Context, job *extraction.ExtractionJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ExtractionJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update extraction job: %w", err)
	}

	r.logger.Info("Updated extraction job with id ", job.ID)
	return nil
}

type gormReviewRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReviewRepository creates a new GORM-based ReviewRepository implementation
func NewGormReviewRepository(db *gorm.DB, logger logger.Logger) (reviews.ReviewRepository, error) {
	return &gormReviewRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormReviewRepository) Create(ctx context.Context, review *reviews.ExtractionReview) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReviewModel{}
	model.FromDomain(review)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Info("Created extraction review with id ", review.ID)
	return nil
}

func (r *gormReviewRepository) ListByExtraction(ctx context.Context, extractionID string) ([]*reviews.ExtractionReview, error) {
	var modelList []*models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("extraction_id = ?", extractionID).
		Order("reviewed_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	domainList := make([]*reviews.ExtractionReview, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormReviewRepository) ListAccepted(ctx context.Context) ([]*reviews.ExtractionReview, error) {
	var modelList []*models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("accepted = ?", true).
		Order("reviewed_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accepted reviews: %w", err)
	}

	domainList := make([]*reviews.ExtractionReview, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
