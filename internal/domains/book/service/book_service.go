package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

// bookService implements book.Service
type bookService struct {
	repo book.Repository
}

// NewBookService creates a new book service instance.
// Service depends on the repository abstraction, not the concrete type,
// so tests can swap in a fake.
func NewBookService(repo book.Repository) book.Service {
	return &bookService{
		repo: repo,
	}
}

func (s *bookService) GetAll(ctx context.Context) ([]*book.BookResponse, error) {
	books, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(books), nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id %s", book.ErrBookNotFound, id)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, fmt.Errorf("%w: id %s", book.ErrBookNotFound, id)
		}
		return nil, err
	}
	return b.ToResponse(), nil
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*book.BookResponse, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn %q", book.ErrBookNotFound, isbn)
	}

	b, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, fmt.Errorf("%w: isbn %s", book.ErrBookNotFound, isbn)
		}
		return nil, err
	}
	return b.ToResponse(), nil
}

func (s *bookService) SearchByAuthor(ctx context.Context, author string) ([]*book.BookResponse, error) {
	books, err := s.repo.SearchByAuthor(ctx, strings.TrimSpace(author))
	if err != nil {
		return nil, err
	}
	return toResponses(books), nil
}

func (s *bookService) SearchByTitle(ctx context.Context, title string) ([]*book.BookResponse, error) {
	books, err := s.repo.SearchByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	return toResponses(books), nil
}

func (s *bookService) GetByPublisherID(ctx context.Context, publisherID uuid.UUID) ([]*book.BookResponse, error) {
	books, err := s.repo.GetByPublisherID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	return toResponses(books), nil
}

// Create registers a new book. The duplicate check here gives a clean
// error message; the unique index on isbn is the real guarantee when
// two creates race.
func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.BookResponse, error) {
	exists, err := s.repo.ExistsByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, fmt.Errorf("failed to check isbn uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", book.ErrDuplicateISBN, req.ISBN)
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// Update fully replaces the book's scalar fields. Keeping the current
// isbn is never a conflict.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.ISBN != req.ISBN {
		exists, err := s.repo.ExistsByISBNExcept(ctx, req.ISBN, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check isbn uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", book.ErrDuplicateISBN, req.ISBN)
		}
	}

	req.ApplyToEntity(b)

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// UpdatePartial merges only the supplied fields into the book.
func (s *bookService) UpdatePartial(ctx context.Context, id uuid.UUID, req *book.PatchBookRequest) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ISBN != nil && b.ISBN != *req.ISBN {
		exists, err := s.repo.ExistsByISBNExcept(ctx, *req.ISBN, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check isbn uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", book.ErrDuplicateISBN, *req.ISBN)
		}
	}

	req.ApplyToEntity(b)

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// UpdateDetailPartial merges supplied detail fields, creating the
// detail record on first use.
func (s *bookService) UpdateDetailPartial(ctx context.Context, id uuid.UUID, req *book.PatchBookDetailRequest) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(b)

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: id %s", book.ErrBookNotFound, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return fmt.Errorf("%w: id %s", book.ErrBookNotFound, id)
		}
		return err
	}
	return nil
}

func toResponses(books []book.Book) []*book.BookResponse {
	responses := make([]*book.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, books[i].ToResponse())
	}
	return responses
}
