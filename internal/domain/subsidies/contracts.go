package subsidies

import "context"

// SubsidyService exposes subsidy discovery and eligibility matching.
type SubsidyService interface {
	// List retrieves subsidies with optional filter.
	List(ctx context.Context, query *SubsidyQuery) ([]*Subsidy, error)
	// GetByID retrieves a subsidy by ID.
	GetByID(ctx context.Context, subsidyID string) (*Subsidy, error)
	// MatchesForFarm lists subsidies a farm is eligible for, by country,
	// open deadline and hectare range.
	MatchesForFarm(ctx context.Context, farmID string) ([]*Subsidy, error)
}

// ApplicationService manages subsidy applications and their status lifecycle.
type ApplicationService interface {
	// Create opens a draft application for a farm and subsidy.
	Create(ctx context.Context, farmID, subsidyID string) (*Application, error)
	// ListByFarm lists a farm's applications.
	ListByFarm(ctx context.Context, farmID string) ([]*Application, error)
	// Transition moves an application to the next status, validating the
	// transition against the allowed-transition map.
	Transition(ctx context.Context, applicationID, nextStatus string) (*Application, error)
}

// SubsidyRepository defines the persistence interface for subsidies
type SubsidyRepository interface {
	// Upsert creates or updates a subsidy keyed by (source_code, external_id)
	Upsert(ctx context.Context, subsidy *Subsidy) error
	// List lists subsidies with optional filter
	List(ctx context.Context, query *SubsidyQuery) ([]*Subsidy, error)
	// GetByID retrieves a subsidy by ID
	GetByID(ctx context.Context, subsidyID string) (*Subsidy, error)
}

// ApplicationRepository defines the persistence interface for applications
type ApplicationRepository interface {
	// Create adds a new application to the database
	Create(ctx context.Context, application *Application) error
	// ListByFarm lists applications for a farm
	ListByFarm(ctx context.Context, farmID string) ([]*Application, error)
	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, applicationID string) (*Application, error)
	// UpdateByID updates an application by ID
	UpdateByID(ctx context.Context, application *Application) error
}
