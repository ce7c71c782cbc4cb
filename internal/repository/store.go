// Package repository implements the unified store interface against the
// remote Postgres backend through the shared pgx pool.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/storage"
)

const uniqueViolation = "23505"

// Store is the Postgres-backed implementation of storage.Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an established pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close is a no-op; the pool's lifecycle belongs to persistence.Postgres.
func (s *Store) Close() error {
	return nil
}

// mapError translates driver errors into the storage domain sentinels.
// Anything unrecognized passes through as a transport failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "assets_team_code_unique":
			return storage.ErrCodeTaken
		case "users_email_key":
			return storage.ErrEmailTaken
		}
	}
	return err
}
