package app

import (
	"context"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// subsidyService implements the SubsidyService interface for discovery and
// eligibility matching.
type subsidyService struct {
	subsidyRepository subsidies.SubsidyRepository
	farmRepository    farms.FarmRepository
	logger            logger.Logger
}

// NewSubsidyService creates a new instance of SubsidyService
func NewSubsidyService(
	subsidyRepository subsidies.SubsidyRepository,
	farmRepository farms.FarmRepository,
	logger logger.Logger,
) (subsidies.SubsidyService, error) {
	return &subsidyService{
		subsidyRepository: subsidyRepository,
		farmRepository:    farmRepository,
		logger:            logger,
	}, nil
}

// List retrieves subsidies with optional filter
func (s *subsidyService) List(ctx context.Context, query *subsidies.SubsidyQuery) ([]*subsidies.Subsidy, error) {
	list, err := s.subsidyRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return list, nil
}

// GetByID retrieves a subsidy by ID
func (s *subsidyService) GetByID(ctx context.Context, subsidyID string) (*subsidies.Subsidy, error) {
	subsidy, err := s.subsidyRepository.GetByID(ctx, subsidyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return subsidy, nil
}

// MatchesForFarm lists subsidies a farm is eligible for: same country, an
// open deadline and a hectare range covering the farm.
func (s *subsidyService) MatchesForFarm(ctx context.Context, farmID string) ([]*subsidies.Subsidy, error) {
	farm, err := s.farmRepository.GetByID(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	query := subsidies.NewSubsidyQuery()
	query.Country = farm.Country
	query.OpenOnly = true
	query.Limit = 500

	candidates, err := s.subsidyRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var matches []*subsidies.Subsidy
	for _, subsidy := range candidates {
		if farm.Hectares < subsidy.MinHectares {
			continue
		}
		if subsidy.MaxHectares > 0 && farm.Hectares > subsidy.MaxHectares {
			continue
		}
		matches = append(matches, subsidy)
	}

	s.logger.Info("Matched ", len(matches), " subsidies for farm ", farmID)
	return matches, nil
}

// applicationService implements the ApplicationService interface for the
// application status lifecycle.
type applicationService struct {
	applicationRepository subsidies.ApplicationRepository
	subsidyRepository     subsidies.SubsidyRepository
	farmRepository        farms.FarmRepository
	audit                 audit.Recorder
	logger                logger.Logger
}

// NewApplicationService creates a new instance of ApplicationService
func NewApplicationService(
	applicationRepository subsidies.ApplicationRepository,
	subsidyRepository subsidies.SubsidyRepository,
	farmRepository farms.FarmRepository,
	auditRecorder audit.Recorder,
	logger logger.Logger,
) (subsidies.ApplicationService, error) {
	return &applicationService{
		applicationRepository: applicationRepository,
		subsidyRepository:     subsidyRepository,
		farmRepository:        farmRepository,
		audit:                 auditRecorder,
		logger:                logger,
	}, nil
}

// Create opens a draft application for a farm and subsidy
func (s *applicationService) Create(ctx context.Context, farmID, subsidyID string) (*subsidies.Application, error) {
	if _, err := s.farmRepository.GetByID(ctx, farmID); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	subsidy, err := s.subsidyRepository.GetByID(ctx, subsidyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !subsidy.OpenAt(time.Now()) {
		return nil, fmt.Errorf("subsidy '%s' no longer accepts applications", subsidyID)
	}

	application := &subsidies.Application{
		ID:        uuid.New().String(),
		FarmID:    farmID,
		SubsidyID: subsidyID,
		Status:    subsidies.ApplicationStatusDraft,
		CreatedAt: time.Now(),
	}

	if err := s.applicationRepository.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return application, nil
}

// ListByFarm lists a farm's applications
func (s *applicationService) ListByFarm(ctx context.Context, farmID string) ([]*subsidies.Application, error) {
	list, err := s.applicationRepository.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return list, nil
}

// Transition moves an application to the next status
func (s *applicationService) Transition(ctx context.Context, applicationID, nextStatus string) (*subsidies.Application, error) {
	application, err := s.applicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !subsidies.CanTransitionApplication(application.Status, nextStatus) {
		return nil, fmt.Errorf("illegal transition from '%s' to '%s'", application.Status, nextStatus)
	}

	previous := application.Status
	application.Status = nextStatus
	if nextStatus == subsidies.ApplicationStatusSubmitted {
		now := time.Now()
		application.SubmittedAt = &now
	}

	if err := s.applicationRepository.UpdateByID(ctx, application); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.audit.Record(ctx, &audit.Event{
		Action:   audit.ActionApplicationChange,
		Resource: application.ID,
		Detail:   fmt.Sprintf("%s -> %s", previous, nextStatus),
	})

	return application, nil
}
