package app

import (
	"context"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// farmService implements the FarmService interface for farm profiles
type farmService struct {
	farmRepository farms.FarmRepository
	logger         logger.Logger
}

// NewFarmService creates a new instance of FarmService
func NewFarmService(farmRepository farms.FarmRepository, logger logger.Logger) (farms.FarmService, error) {
	return &farmService{
		farmRepository: farmRepository,
		logger:         logger,
	}, nil
}

// Create registers a new farm for a user
func (s *farmService) Create(ctx context.Context, farm *farms.Farm) (*farms.Farm, error) {
	if farm.ID == "" {
		farm.ID = uuid.New().String()
	}
	if farm.CreatedAt.IsZero() {
		farm.CreatedAt = time.Now()
	}

	if err := s.farmRepository.Create(ctx, farm); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return farm, nil
}

// GetByID retrieves a farm by ID
func (s *farmService) GetByID(ctx context.Context, farmID string) (*farms.Farm, error) {
	farm, err := s.farmRepository.GetByID(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return farm, nil
}

// ListByOwner lists a user's farms
func (s *farmService) ListByOwner(ctx context.Context, ownerUserID string) ([]*farms.Farm, error) {
	list, err := s.farmRepository.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return list, nil
}

// UpdateByID updates a farm's profile
func (s *farmService) UpdateByID(ctx context.Context, farm *farms.Farm) (*farms.Farm, error) {
	existing, err := s.farmRepository.GetByID(ctx, farm.ID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	farm.OwnerUserID = existing.OwnerUserID
	farm.CreatedAt = existing.CreatedAt

	if err := s.farmRepository.UpdateByID(ctx, farm); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return farm, nil
}

// DeleteByID removes a farm
func (s *farmService) DeleteByID(ctx context.Context, farmID string) error {
	if err := s.farmRepository.DeleteByID(ctx, farmID); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
