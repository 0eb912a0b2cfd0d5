package farms

import "context"

// FarmService defines CRUD operations over farms.
type FarmService interface {
	// Create registers a new farm for a user.
	Create(ctx context.Context, farm *Farm) (*Farm, error)
	// GetByID retrieves a farm by ID.
	GetByID(ctx context.Context, farmID string) (*Farm, error)
	// ListByOwner lists a user's farms.
	ListByOwner(ctx context.Context, ownerUserID string) ([]*Farm, error)
	// UpdateByID updates a farm's profile.
	UpdateByID(ctx context.Context, farm *Farm) (*Farm, error)
	// DeleteByID removes a farm.
	DeleteByID(ctx context.Context, farmID string) error
}

// FarmRepository defines the persistence interface for farms
type FarmRepository interface {
	// Create adds a new farm to the database
	Create(ctx context.Context, farm *Farm) error
	// ListByOwner lists farms belonging to a user
	ListByOwner(ctx context.Context, ownerUserID string) ([]*Farm, error)
	// GetByID retrieves a farm by ID
	GetByID(ctx context.Context, farmID string) (*Farm, error)
	// UpdateByID updates a farm by ID
	UpdateByID(ctx context.Context, farm *Farm) error
	// DeleteByID deletes a farm by ID
	DeleteByID(ctx context.Context, farmID string) error
}
