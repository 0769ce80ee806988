package book

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for the Book domain.
type Service interface {
	// GetAll retrieves every book.
	GetAll(ctx context.Context) ([]*BookResponse, error)

	// GetByID retrieves a single book.
	// Errors: ErrBookNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*BookResponse, error)

	// GetByISBN retrieves a single book by isbn.
	// Errors: ErrBookNotFound
	GetByISBN(ctx context.Context, isbn string) (*BookResponse, error)

	// SearchByAuthor finds books whose author contains the query,
	// case-insensitive.
	SearchByAuthor(ctx context.Context, author string) ([]*BookResponse, error)

	// SearchByTitle finds books whose title contains the query,
	// case-insensitive.
	SearchByTitle(ctx context.Context, title string) ([]*BookResponse, error)

	// GetByPublisherID retrieves all books owned by a publisher.
	GetByPublisherID(ctx context.Context, publisherID uuid.UUID) ([]*BookResponse, error)

	// Create registers a new book, wiring its detail record when the
	// request carries one.
	// Errors: ErrDuplicateISBN
	Create(ctx context.Context, req *CreateBookRequest) (*BookResponse, error)

	// Update fully replaces the book's scalar fields. A detail payload
	// replaces the detail record, creating it on first use.
	// Errors: ErrBookNotFound, ErrDuplicateISBN
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookRequest) (*BookResponse, error)

	// UpdatePartial merges only the supplied fields.
	// Errors: ErrBookNotFound, ErrDuplicateISBN
	UpdatePartial(ctx context.Context, id uuid.UUID, req *PatchBookRequest) (*BookResponse, error)

	// UpdateDetailPartial merges supplied detail fields, creating the
	// detail record lazily.
	// Errors: ErrBookNotFound
	UpdateDetailPartial(ctx context.Context, id uuid.UUID, req *PatchBookDetailRequest) (*BookResponse, error)

	// Delete removes a book and its detail record.
	// Errors: ErrBookNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
