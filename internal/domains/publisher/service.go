package publisher

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for the Publisher domain.
type Service interface {
	// GetAll retrieves every publisher with its book count.
	GetAll(ctx context.Context) ([]*PublisherResponse, error)

	// GetByID retrieves a single publisher.
	// Errors: ErrPublisherNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*PublisherResponse, error)

	// GetByName retrieves a single publisher by name.
	// Errors: ErrPublisherNotFound
	GetByName(ctx context.Context, name string) (*PublisherResponse, error)

	// Create registers a new publisher.
	// Errors: ErrDuplicateName
	Create(ctx context.Context, req *CreatePublisherRequest) (*PublisherResponse, error)

	// Update fully replaces the publisher's scalar fields. Keeping the
	// current name is never a conflict.
	// Errors: ErrPublisherNotFound, ErrDuplicateName
	Update(ctx context.Context, id uuid.UUID, req *CreatePublisherRequest) (*PublisherResponse, error)

	// Delete removes a publisher. Blocked while the publisher still
	// owns any books.
	// Errors: ErrPublisherNotFound, ErrPublisherHasBooks
	Delete(ctx context.Context, id uuid.UUID) error
}
