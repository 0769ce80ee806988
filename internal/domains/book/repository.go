package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access operations for the Book aggregate.
// Implementations load and persist the book together with its optional
// detail record.
type Repository interface {
	// Create inserts a book and, when present, its detail record in a
	// single transaction.
	// Errors: ErrDuplicateISBN if the isbn is taken
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID retrieves a book with its detail joined in.
	// Errors: ErrBookNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetByISBN retrieves a book by its unique isbn.
	// Errors: ErrBookNotFound
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// GetAll retrieves every book ordered by creation time.
	GetAll(ctx context.Context) ([]Book, error)

	// SearchByAuthor performs case-insensitive partial matching on the
	// author column.
	SearchByAuthor(ctx context.Context, author string) ([]Book, error)

	// SearchByTitle performs case-insensitive partial matching on the
	// title column.
	SearchByTitle(ctx context.Context, title string) ([]Book, error)

	// GetByPublisherID retrieves all books owned by a publisher.
	GetByPublisherID(ctx context.Context, publisherID uuid.UUID) ([]Book, error)

	// Update persists the book's scalar fields and upserts its detail
	// record when one is attached.
	// Errors: ErrBookNotFound, ErrDuplicateISBN
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete removes a book; the detail record goes with it.
	// Errors: ErrBookNotFound
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByISBN checks whether any book uses the isbn.
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// ExistsByISBNExcept checks whether a different book uses the isbn.
	// Used on updates so a book keeping its own isbn is not a conflict.
	ExistsByISBNExcept(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error)

	// CountByPublisherID returns how many books a publisher owns.
	CountByPublisherID(ctx context.Context, publisherID uuid.UUID) (int, error)
}
