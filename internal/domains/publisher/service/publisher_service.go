package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/publisher"
)

// publisherService implements publisher.Service
type publisherService struct {
	repo     publisher.Repository
	bookRepo book.Repository
}

// NewPublisherService creates a new publisher service instance. The
// book repository is needed for book counts and the delete guard.
func NewPublisherService(repo publisher.Repository, bookRepo book.Repository) publisher.Service {
	return &publisherService{
		repo:     repo,
		bookRepo: bookRepo,
	}
}

func (s *publisherService) GetAll(ctx context.Context) ([]*publisher.PublisherResponse, error) {
	publishers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*publisher.PublisherResponse, 0, len(publishers))
	for i := range publishers {
		count, err := s.bookRepo.CountByPublisherID(ctx, publishers[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, publishers[i].ToResponse(count))
	}
	return responses, nil
}

func (s *publisherService) GetByID(ctx context.Context, id uuid.UUID) (*publisher.PublisherResponse, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id %s", publisher.ErrPublisherNotFound, id)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, publisher.ErrPublisherNotFound) {
			return nil, fmt.Errorf("%w: id %s", publisher.ErrPublisherNotFound, id)
		}
		return nil, err
	}

	count, err := s.bookRepo.CountByPublisherID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p.ToResponse(count), nil
}

func (s *publisherService) GetByName(ctx context.Context, name string) (*publisher.PublisherResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name %q", publisher.ErrPublisherNotFound, name)
	}

	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, publisher.ErrPublisherNotFound) {
			return nil, fmt.Errorf("%w: name %s", publisher.ErrPublisherNotFound, name)
		}
		return nil, err
	}

	count, err := s.bookRepo.CountByPublisherID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p.ToResponse(count), nil
}

// Create registers a new publisher. The duplicate check gives a clean
// error message; the unique index on name backs it up under races.
func (s *publisherService) Create(ctx context.Context, req *publisher.CreatePublisherRequest) (*publisher.PublisherResponse, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", publisher.ErrDuplicateName, req.Name)
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}
	return created.ToResponse(0), nil
}

// Update fully replaces the publisher's scalar fields. Keeping the
// current name is never a conflict.
func (s *publisherService) Update(ctx context.Context, id uuid.UUID, req *publisher.CreatePublisherRequest) (*publisher.PublisherResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != req.Name {
		exists, err := s.repo.ExistsByNameExcept(ctx, req.Name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", publisher.ErrDuplicateName, req.Name)
		}
	}

	req.ApplyToEntity(p)

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	count, err := s.bookRepo.CountByPublisherID(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(count), nil
}

// Delete removes a publisher unless it still owns books.
func (s *publisherService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.bookRepo.CountByPublisherID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: publisher has %d linked books", publisher.ErrPublisherHasBooks, count)
	}

	return s.repo.Delete(ctx, id)
}
