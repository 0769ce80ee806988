package publisher

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

// Publisher represents the core Publisher entity. It owns a collection
// of books; deletion is blocked while any book still references it.
type Publisher struct {
	ID uuid.UUID `json:"id" db:"id"`

	Name            string     `json:"name" db:"name"` // Unique across all publishers
	EstablishedDate *time.Time `json:"established_date" db:"established_date"`
	Address         *string    `json:"address" db:"address"`

	// Books is populated only when the caller loads it explicitly; the
	// column of record is books.publisher_id.
	Books []*book.Book `json:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AddBook wires both sides of the Publisher/Book relation.
func (p *Publisher) AddBook(b *book.Book) {
	if b == nil {
		return
	}
	b.PublisherID = &p.ID
	p.Books = append(p.Books, b)
}

// RemoveBook detaches the book from the publisher and clears its
// foreign key.
func (p *Publisher) RemoveBook(b *book.Book) {
	if b == nil {
		return
	}
	for i := range p.Books {
		if p.Books[i].ID == b.ID {
			p.Books = append(p.Books[:i], p.Books[i+1:]...)
			break
		}
	}
	b.PublisherID = nil
}
