package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/publisher"
)

// fakePublisherRepo is an in-memory publisher.Repository.
type fakePublisherRepo struct {
	publishers map[uuid.UUID]*publisher.Publisher
}

func newFakePublisherRepo() *fakePublisherRepo {
	return &fakePublisherRepo{publishers: make(map[uuid.UUID]*publisher.Publisher)}
}

func (f *fakePublisherRepo) Create(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error) {
	for _, existing := range f.publishers {
		if existing.Name == p.Name {
			return nil, publisher.ErrDuplicateName
		}
	}
	saved := *p
	saved.ID = uuid.New()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	f.publishers[saved.ID] = &saved
	out := saved
	return &out, nil
}

func (f *fakePublisherRepo) GetByID(ctx context.Context, id uuid.UUID) (*publisher.Publisher, error) {
	p, ok := f.publishers[id]
	if !ok {
		return nil, publisher.ErrPublisherNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakePublisherRepo) GetByName(ctx context.Context, name string) (*publisher.Publisher, error) {
	for _, p := range f.publishers {
		if p.Name == name {
			out := *p
			return &out, nil
		}
	}
	return nil, publisher.ErrPublisherNotFound
}

func (f *fakePublisherRepo) GetAll(ctx context.Context) ([]publisher.Publisher, error) {
	var out []publisher.Publisher
	for _, p := range f.publishers {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePublisherRepo) Update(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error) {
	if _, ok := f.publishers[p.ID]; !ok {
		return nil, publisher.ErrPublisherNotFound
	}
	saved := *p
	saved.UpdatedAt = time.Now()
	f.publishers[p.ID] = &saved
	out := saved
	return &out, nil
}

func (f *fakePublisherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.publishers[id]; !ok {
		return publisher.ErrPublisherNotFound
	}
	delete(f.publishers, id)
	return nil
}

func (f *fakePublisherRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, p := range f.publishers {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePublisherRepo) ExistsByNameExcept(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for _, p := range f.publishers {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeBookCounter implements the book.Repository methods the publisher
// service actually touches; the rest are unused.
type fakeBookCounter struct {
	book.Repository
	counts map[uuid.UUID]int
}

func newFakeBookCounter() *fakeBookCounter {
	return &fakeBookCounter{counts: make(map[uuid.UUID]int)}
}

func (f *fakeBookCounter) CountByPublisherID(ctx context.Context, publisherID uuid.UUID) (int, error) {
	return f.counts[publisherID], nil
}

func TestPublisherService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "Hanbit Media", created.Name)
		assert.Equal(t, 0, created.BookCount)

		byName, err := svc.GetByName(ctx, "Hanbit Media")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		repo := newFakePublisherRepo()
		svc := NewPublisherService(repo, newFakeBookCounter())

		_, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		assert.ErrorIs(t, err, publisher.ErrDuplicateName)
		assert.Len(t, repo.publishers, 1)
	})
}

func TestPublisherService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("renaming to own name is not a conflict", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		assert.NoError(t, err)
	})

	t.Run("renaming to another publisher's name conflicts", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		first, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "O'Reilly"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, first.ID, &publisher.CreatePublisherRequest{Name: "O'Reilly"})
		assert.ErrorIs(t, err, publisher.ErrDuplicateName)
	})

	t.Run("full replace clears omitted optionals", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		address := "12 Sejong-daero, Seoul"
		established := "1993-03-02"
		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{
			Name:            "Hanbit Media",
			Address:         &address,
			EstablishedDate: &established,
		})
		require.NoError(t, err)
		require.NotNil(t, created.Address)

		updated, err := svc.Update(ctx, created.ID, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)
		assert.Nil(t, updated.Address)
		assert.Nil(t, updated.EstablishedDate)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		_, err := svc.Update(ctx, uuid.New(), &publisher.CreatePublisherRequest{Name: "Nobody"})
		assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
	})
}

func TestPublisherService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while books remain", func(t *testing.T) {
		repo := newFakePublisherRepo()
		counter := newFakeBookCounter()
		svc := NewPublisherService(repo, counter)

		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		counter.counts[created.ID] = 3

		err = svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, publisher.ErrPublisherHasBooks)
		assert.True(t, strings.Contains(err.Error(), "3"), "error should carry the dependent book count")
		assert.Len(t, repo.publishers, 1)
	})

	t.Run("allowed once no books remain", func(t *testing.T) {
		repo := newFakePublisherRepo()
		svc := NewPublisherService(repo, newFakeBookCounter())

		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))
		assert.Empty(t, repo.publishers)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())
		err := svc.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
	})
}

func TestPublisherService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("includes book count", func(t *testing.T) {
		counter := newFakeBookCounter()
		svc := NewPublisherService(newFakePublisherRepo(), counter)

		created, err := svc.Create(ctx, &publisher.CreatePublisherRequest{Name: "Hanbit Media"})
		require.NoError(t, err)

		counter.counts[created.ID] = 7

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.BookCount)
	})

	t.Run("not found names the id", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		id := uuid.New()
		_, err := svc.GetByID(ctx, id)
		require.ErrorIs(t, err, publisher.ErrPublisherNotFound)
		assert.Contains(t, err.Error(), id.String())
	})
}

func TestPublisherService_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("not found names the name", func(t *testing.T) {
		svc := NewPublisherService(newFakePublisherRepo(), newFakeBookCounter())

		_, err := svc.GetByName(ctx, "Nobody Press")
		require.ErrorIs(t, err, publisher.ErrPublisherNotFound)
		assert.Contains(t, err.Error(), "Nobody Press")
	})
}
