package audit

import "context"

// Recorder writes audit events. Recording must never fail a caller's
// operation; implementations log and swallow persistence errors.
type Recorder interface {
	// Record stores one audit event.
	Record(ctx context.Context, event *Event)
}

// AuditService exposes the audit log for administrators.
type AuditService interface {
	Recorder
	// List retrieves audit events with optional filter.
	List(ctx context.Context, query *EventQuery) ([]*Event, error)
}

// EventRepository defines the persistence interface for audit events
type EventRepository interface {
	// Create adds a new event to the database
	Create(ctx context.Context, event *Event) error
	// List lists events with optional filter
	List(ctx context.Context, query *EventQuery) ([]*Event, error)
}
