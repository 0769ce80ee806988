package publisher

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access operations for publishers.
type Repository interface {
	// Create inserts a new publisher.
	// Errors: ErrDuplicateName if the name is taken
	Create(ctx context.Context, p *Publisher) (*Publisher, error)

	// GetByID retrieves a publisher by UUID.
	// Errors: ErrPublisherNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Publisher, error)

	// GetByName retrieves a publisher by its unique name.
	// Errors: ErrPublisherNotFound
	GetByName(ctx context.Context, name string) (*Publisher, error)

	// GetAll retrieves every publisher ordered by creation time.
	GetAll(ctx context.Context) ([]Publisher, error)

	// Update persists the publisher's scalar fields.
	// Errors: ErrPublisherNotFound, ErrDuplicateName
	Update(ctx context.Context, p *Publisher) (*Publisher, error)

	// Delete removes a publisher by ID. The service checks for owned
	// books first; the foreign key backs that check up.
	// Errors: ErrPublisherNotFound, ErrPublisherHasBooks
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName checks if the name is taken.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByNameExcept checks if a different publisher uses the name.
	ExistsByNameExcept(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
}
