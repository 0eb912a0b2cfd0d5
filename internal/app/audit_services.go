package app

import (
	"context"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// auditService implements the AuditService interface over the event repository
type auditService struct {
	eventRepository audit.EventRepository
	logger          logger.Logger
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(eventRepository audit.EventRepository, logger logger.Logger) (audit.AuditService, error) {
	return &auditService{
		eventRepository: eventRepository,
		logger:          logger,
	}, nil
}

// Record stores one audit event. Persistence failures are logged and
// swallowed so auditing never fails the recorded operation.
func (s *auditService) Record(ctx context.Context, event *audit.Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if err := s.eventRepository.Create(ctx, event); err != nil {
		s.logger.Error("Failed to record audit event ", event.Action, ": ", err)
	}
}

// List retrieves audit events with optional filter
func (s *auditService) List(ctx context.Context, query *audit.EventQuery) ([]*audit.Event, error) {
	events, err := s.eventRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return events, nil
}
