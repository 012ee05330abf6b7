package postgres

import (
	"context"
	"fmt"

	"github.com/feastline/menu-api/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the full storage surface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users and the menu catalog.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone_number TEXT,
			hashed_password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_phone_number_unique_idx
			ON users (phone_number) WHERE phone_number IS NOT NULL;`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price_cents BIGINT NOT NULL CHECK (price_cents > 0),
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			UNIQUE (category_id, name)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
