package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// postgresRepository implements book.Repository.
// Uses pgxpool for PostgreSQL and Redis for caching.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new book repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Cache key constants
const (
	bookCacheKeyPrefix  = "book:"
	bookISBNKeyPrefix   = "book:isbn:"
	bookSearchKeyPrefix = "book:search:"
	cacheTTL            = 15 * time.Minute
)

// joinedBookColumns selects the book row together with its optional
// detail record.
const joinedBookColumns = `
        b.id, b.title, b.author, b.isbn, b.price, b.publish_date, b.publisher_id,
        b.created_at, b.updated_at,
        d.id, d.description, d.language, d.page_count, d.publisher,
        d.cover_image_url, d.edition, d.created_at, d.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanJoinedBook scans a LEFT JOIN row; detail columns are all NULL
// when the book has no detail record.
func scanJoinedBook(row rowScanner) (*book.Book, error) {
	var b book.Book
	var detailID *uuid.UUID
	var description, language, publisher, coverImageURL, edition *string
	var pageCount *int
	var detailCreatedAt, detailUpdatedAt *time.Time

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Price,
		&b.PublishDate,
		&b.PublisherID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&detailID,
		&description,
		&language,
		&pageCount,
		&publisher,
		&coverImageURL,
		&edition,
		&detailCreatedAt,
		&detailUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if detailID != nil {
		b.Detail = &book.BookDetail{
			ID:            *detailID,
			BookID:        b.ID,
			Description:   *description,
			Language:      *language,
			PageCount:     *pageCount,
			Publisher:     *publisher,
			CoverImageURL: *coverImageURL,
			Edition:       *edition,
			CreatedAt:     *detailCreatedAt,
			UpdatedAt:     *detailUpdatedAt,
		}
	}
	return &b, nil
}

// Create inserts the book and its optional detail in one transaction.
func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*book.Book, error) {
		query := `
        INSERT INTO books (title, author, isbn, price, publish_date, publisher_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, title, author, isbn, price, publish_date, publisher_id, created_at, updated_at
    `

		var saved book.Book
		err := tx.QueryRow(
			ctx,
			query,
			b.Title,
			b.Author,
			b.ISBN,
			b.Price,
			b.PublishDate,
			b.PublisherID,
		).Scan(
			&saved.ID,
			&saved.Title,
			&saved.Author,
			&saved.ISBN,
			&saved.Price,
			&saved.PublishDate,
			&saved.PublisherID,
			&saved.CreatedAt,
			&saved.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if b.Detail != nil {
			detail, err := insertDetail(ctx, tx, saved.ID, b.Detail)
			if err != nil {
				return nil, err
			}
			saved.AttachDetail(detail)
		}

		return &saved, nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return nil, book.ErrDuplicateISBN
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	// A new book can appear in any cached search result.
	r.cache.DeletePattern(ctx, bookSearchKeyPrefix+"*")

	return created, nil
}

func insertDetail(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, d *book.BookDetail) (*book.BookDetail, error) {
	query := `
        INSERT INTO book_details (book_id, description, language, page_count, publisher, cover_image_url, edition)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, book_id, description, language, page_count, publisher, cover_image_url, edition, created_at, updated_at
    `

	var saved book.BookDetail
	err := tx.QueryRow(
		ctx,
		query,
		bookID,
		d.Description,
		d.Language,
		d.PageCount,
		d.Publisher,
		d.CoverImageURL,
		d.Edition,
	).Scan(
		&saved.ID,
		&saved.BookID,
		&saved.Description,
		&saved.Language,
		&saved.PageCount,
		&saved.Publisher,
		&saved.CoverImageURL,
		&saved.Edition,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByID retrieves a book with its detail, cached by id.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached book.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        WHERE b.id = $1
    `

	b, err := scanJoinedBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

// GetByISBN retrieves a book by isbn, cached under both keys.
func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	cacheKey := bookISBNKeyPrefix + isbn

	var cached book.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        WHERE b.isbn = $1
    `

	b, err := scanJoinedBook(r.pool.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)
	r.cache.Set(ctx, bookCacheKeyPrefix+b.ID.String(), b, cacheTTL)

	return b, nil
}

// GetAll retrieves every book ordered by creation time.
func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        ORDER BY b.created_at DESC
    `

	return r.queryBooks(ctx, query)
}

// SearchByAuthor performs case-insensitive partial matching. Results
// are cached per term; any book mutation drops the whole search
// keyspace.
func (r *postgresRepository) SearchByAuthor(ctx context.Context, author string) ([]book.Book, error) {
	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        WHERE b.author ILIKE $1
        ORDER BY b.created_at DESC
    `

	return r.searchBooks(ctx, "author:"+strings.ToLower(author), query, "%"+author+"%")
}

// SearchByTitle performs case-insensitive partial matching.
func (r *postgresRepository) SearchByTitle(ctx context.Context, title string) ([]book.Book, error) {
	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        WHERE b.title ILIKE $1
        ORDER BY b.created_at DESC
    `

	return r.searchBooks(ctx, "title:"+strings.ToLower(title), query, "%"+title+"%")
}

func (r *postgresRepository) searchBooks(ctx context.Context, term, query string, args ...any) ([]book.Book, error) {
	cacheKey := bookSearchKeyPrefix + term

	var cached []book.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	books, err := r.queryBooks(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, books, cacheTTL)

	return books, nil
}

// GetByPublisherID retrieves all books owned by a publisher.
func (r *postgresRepository) GetByPublisherID(ctx context.Context, publisherID uuid.UUID) ([]book.Book, error) {
	query := `
        SELECT ` + joinedBookColumns + `
        FROM books b
        LEFT JOIN book_details d ON d.book_id = b.id
        WHERE b.publisher_id = $1
        ORDER BY b.created_at DESC
    `

	return r.queryBooks(ctx, query, publisherID)
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanJoinedBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// Update persists scalar fields and upserts the detail record when one
// is attached. Runs in a single transaction.
func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	// Old isbn is needed to invalidate its cache entry after a rename.
	var oldISBN string
	err := r.pool.QueryRow(ctx, "SELECT isbn FROM books WHERE id = $1", b.ID).Scan(&oldISBN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book for update: %w", err)
	}

	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*book.Book, error) {
		query := `
        UPDATE books
        SET
            title = $1,
            author = $2,
            isbn = $3,
            price = $4,
            publish_date = $5,
            publisher_id = $6,
            updated_at = NOW()
        WHERE id = $7
        RETURNING id, title, author, isbn, price, publish_date, publisher_id, created_at, updated_at
    `

		var saved book.Book
		err := tx.QueryRow(
			ctx,
			query,
			b.Title,
			b.Author,
			b.ISBN,
			b.Price,
			b.PublishDate,
			b.PublisherID,
			b.ID,
		).Scan(
			&saved.ID,
			&saved.Title,
			&saved.Author,
			&saved.ISBN,
			&saved.Price,
			&saved.PublishDate,
			&saved.PublisherID,
			&saved.CreatedAt,
			&saved.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if b.Detail != nil {
			detail, err := upsertDetail(ctx, tx, saved.ID, b.Detail)
			if err != nil {
				return nil, err
			}
			saved.AttachDetail(detail)
		}

		return &saved, nil
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return nil, book.ErrDuplicateISBN
			}
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidateBookCache(ctx, b.ID, oldISBN, updated.ISBN)

	return updated, nil
}

func upsertDetail(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, d *book.BookDetail) (*book.BookDetail, error) {
	query := `
        INSERT INTO book_details (book_id, description, language, page_count, publisher, cover_image_url, edition)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (book_id) DO UPDATE
        SET
            description = EXCLUDED.description,
            language = EXCLUDED.language,
            page_count = EXCLUDED.page_count,
            publisher = EXCLUDED.publisher,
            cover_image_url = EXCLUDED.cover_image_url,
            edition = EXCLUDED.edition,
            updated_at = NOW()
        RETURNING id, book_id, description, language, page_count, publisher, cover_image_url, edition, created_at, updated_at
    `

	var saved book.BookDetail
	err := tx.QueryRow(
		ctx,
		query,
		bookID,
		d.Description,
		d.Language,
		d.PageCount,
		d.Publisher,
		d.CoverImageURL,
		d.Edition,
	).Scan(
		&saved.ID,
		&saved.BookID,
		&saved.Description,
		&saved.Language,
		&saved.PageCount,
		&saved.Publisher,
		&saved.CoverImageURL,
		&saved.Edition,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes a book; the detail row cascades away with it.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Get isbn first for cache invalidation
	var isbn string
	err := r.pool.QueryRow(ctx, "SELECT isbn FROM books WHERE id = $1", id).Scan(&isbn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.ErrBookNotFound
		}
		return fmt.Errorf("failed to load book for delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidateBookCache(ctx, id, isbn, isbn)

	return nil
}

// ExistsByISBN checks whether any book uses the isbn.
func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, isbn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}

	return exists, nil
}

// ExistsByISBNExcept checks whether a different book uses the isbn.
func (r *postgresRepository) ExistsByISBNExcept(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, isbn, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}

	return exists, nil
}

// CountByPublisherID returns how many books a publisher owns.
func (r *postgresRepository) CountByPublisherID(ctx context.Context, publisherID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM books WHERE publisher_id = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, publisherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by publisher: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID, oldISBN, newISBN string) {
	keys := []string{
		bookCacheKeyPrefix + id.String(),
		bookISBNKeyPrefix + oldISBN,
	}
	if newISBN != oldISBN {
		keys = append(keys, bookISBNKeyPrefix+newISBN)
	}
	r.cache.Delete(ctx, keys...)
	r.cache.DeletePattern(ctx, bookSearchKeyPrefix+"*")
}
