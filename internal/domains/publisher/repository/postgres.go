package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/publisher"
	"library-backend/pkg/cache"
)

// postgresRepository implements publisher.Repository.
// Uses pgxpool for PostgreSQL and Redis for caching.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new publisher repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) publisher.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Cache key constants
const (
	publisherCacheKeyPrefix = "publisher:"
	publisherNameKeyPrefix  = "publisher:name:"
	cacheTTL                = 15 * time.Minute
)

const publisherColumns = `id, name, established_date, address, created_at, updated_at`

func scanPublisher(row pgx.Row) (*publisher.Publisher, error) {
	var p publisher.Publisher
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.EstablishedDate,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new publisher.
func (r *postgresRepository) Create(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error) {
	query := `
        INSERT INTO publishers (name, established_date, address)
        VALUES ($1, $2, $3)
        RETURNING ` + publisherColumns

	created, err := scanPublisher(r.pool.QueryRow(ctx, query, p.Name, p.EstablishedDate, p.Address))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, publisher.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	return created, nil
}

// GetByID retrieves a publisher by UUID with caching.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*publisher.Publisher, error) {
	cacheKey := publisherCacheKeyPrefix + id.String()

	var cached publisher.Publisher
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE id = $1`

	p, err := scanPublisher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, p, cacheTTL)

	return p, nil
}

// GetByName retrieves a publisher by name, cached under both keys.
func (r *postgresRepository) GetByName(ctx context.Context, name string) (*publisher.Publisher, error) {
	cacheKey := publisherNameKeyPrefix + name

	var cached publisher.Publisher
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE name = $1`

	p, err := scanPublisher(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by name: %w", err)
	}

	r.cache.Set(ctx, cacheKey, p, cacheTTL)
	r.cache.Set(ctx, publisherCacheKeyPrefix+p.ID.String(), p, cacheTTL)

	return p, nil
}

// GetAll retrieves every publisher ordered by creation time.
func (r *postgresRepository) GetAll(ctx context.Context) ([]publisher.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query publishers: %w", err)
	}
	defer rows.Close()

	var publishers []publisher.Publisher
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publishers: %w", err)
	}

	return publishers, nil
}

// Update persists the publisher's scalar fields.
func (r *postgresRepository) Update(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error) {
	// Old name is needed to invalidate its cache entry after a rename.
	var oldName string
	err := r.pool.QueryRow(ctx, "SELECT name FROM publishers WHERE id = $1", p.ID).Scan(&oldName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to load publisher for update: %w", err)
	}

	query := `
        UPDATE publishers
        SET
            name = $1,
            established_date = $2,
            address = $3,
            updated_at = NOW()
        WHERE id = $4
        RETURNING ` + publisherColumns

	updated, err := scanPublisher(r.pool.QueryRow(ctx, query, p.Name, p.EstablishedDate, p.Address, p.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publisher.ErrPublisherNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, publisher.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}

	r.invalidatePublisherCache(ctx, p.ID, oldName, updated.Name)

	return updated, nil
}

// Delete removes a publisher by ID.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Get name first for cache invalidation
	var name string
	err := r.pool.QueryRow(ctx, "SELECT name FROM publishers WHERE id = $1", id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return publisher.ErrPublisherNotFound
		}
		return fmt.Errorf("failed to load publisher for delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return publisher.ErrPublisherHasBooks
		}
		return fmt.Errorf("failed to delete publisher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return publisher.ErrPublisherNotFound
	}

	r.invalidatePublisherCache(ctx, id, name, name)

	return nil
}

// ExistsByName checks if the name is taken.
func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM publishers WHERE name = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}

	return exists, nil
}

// ExistsByNameExcept checks if a different publisher uses the name.
func (r *postgresRepository) ExistsByNameExcept(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM publishers WHERE name = $1 AND id <> $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) invalidatePublisherCache(ctx context.Context, id uuid.UUID, oldName, newName string) {
	keys := []string{
		publisherCacheKeyPrefix + id.String(),
		publisherNameKeyPrefix + oldName,
	}
	if newName != oldName {
		keys = append(keys, publisherNameKeyPrefix+newName)
	}
	r.cache.Delete(ctx, keys...)
}
