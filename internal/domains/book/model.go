package book

import (
	"time"

	"github.com/google/uuid"
)

// Book represents the core Book entity.
// This is the domain model, independent of database/API concerns.
type Book struct {
	ID uuid.UUID `json:"id" db:"id"`

	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	ISBN        string    `json:"isbn" db:"isbn"` // Unique across all books
	Price       int       `json:"price" db:"price"`
	PublishDate time.Time `json:"publish_date" db:"publish_date"`

	// Optional link to the owning publisher
	PublisherID *uuid.UUID `json:"publisher_id" db:"publisher_id"`

	// Optional one-to-one detail record; the foreign key lives on the
	// detail side
	Detail *BookDetail `json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BookDetail holds the extended description of a Book. It is created
// together with the book or lazily on first detail update, and is
// removed when its book is deleted.
type BookDetail struct {
	ID     uuid.UUID `json:"id" db:"id"`
	BookID uuid.UUID `json:"book_id" db:"book_id"`

	Description   string `json:"description" db:"description"`
	Language      string `json:"language" db:"language"`
	PageCount     int    `json:"page_count" db:"page_count"`
	Publisher     string `json:"publisher" db:"publisher"` // Free-text label, not the Publisher entity
	CoverImageURL string `json:"cover_image_url" db:"cover_image_url"`
	Edition       string `json:"edition" db:"edition"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AttachDetail wires both sides of the Book/BookDetail relation.
func (b *Book) AttachDetail(d *BookDetail) {
	if d == nil {
		b.Detail = nil
		return
	}
	d.BookID = b.ID
	b.Detail = d
}

// HasDetail checks if the book carries a detail record.
func (b *Book) HasDetail() bool {
	return b.Detail != nil
}
