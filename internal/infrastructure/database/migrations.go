package database

import (
	"context"
	"fmt"
)

// RunMigrations creates the schema if it does not exist yet. Statements
// are idempotent so startup is safe to repeat.
func (db *PostgresDB) RunMigrations(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS publishers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL UNIQUE,
		established_date DATE,
		address VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(500) NOT NULL,
		author VARCHAR(255) NOT NULL,
		isbn VARCHAR(20) NOT NULL UNIQUE,
		price INTEGER NOT NULL,
		publish_date DATE NOT NULL,
		publisher_id UUID REFERENCES publishers(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS book_details (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		book_id UUID NOT NULL UNIQUE REFERENCES books(id) ON DELETE CASCADE,
		description TEXT,
		language VARCHAR(100),
		page_count INTEGER,
		publisher VARCHAR(255),
		cover_image_url VARCHAR(500),
		edition VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_books_author ON books(author);
	CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);
	CREATE INDEX IF NOT EXISTS idx_books_publisher_id ON books(publisher_id);
	`

	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
