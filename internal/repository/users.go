package repository

import (
	"context"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

const userColumns = `id, name, email, password_hash, company, photo, team_id, created_at, updated_at`

// CreateUser inserts a user. A duplicate email surfaces as ErrEmailTaken
// from the unique constraint, regardless of any prior check.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, company, photo, team_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return mapError(s.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Company,
		user.Photo,
		user.TeamID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt))
}

// GetUser fetches a user by identity.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.fetchUser(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

// GetUserByEmail resolves a user through the email index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.fetchUser(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (s *Store) fetchUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Company,
		&user.Photo,
		&user.TeamID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// UpdateUser merges the non-nil change fields over the stored record and
// refreshes updated_at. COALESCE keeps unchanged columns server-side, so the
// merge is one statement rather than read-modify-write.
func (s *Store) UpdateUser(ctx context.Context, id int64, changes storage.UserChanges) (*domain.User, error) {
	const query = `
        UPDATE users SET
            name=COALESCE($1, name),
            password_hash=COALESCE($2, password_hash),
            company=COALESCE($3, company),
            photo=COALESCE($4, photo),
            team_id=COALESCE($5, team_id),
            updated_at=NOW()
        WHERE id=$6
        RETURNING ` + userColumns
	var user domain.User
	if err := s.pool.QueryRow(ctx, query,
		changes.Name,
		changes.PasswordHash,
		changes.Company,
		changes.Photo,
		changes.TeamID,
		id,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Company,
		&user.Photo,
		&user.TeamID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
