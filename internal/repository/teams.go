package repository

import (
	"context"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ListTeams returns every team in identity order.
func (s *Store) ListTeams(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM teams ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// GetTeam fetches a team by identity.
func (s *Store) GetTeam(ctx context.Context, id int64) (*domain.Team, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM teams WHERE id=$1`
	var team domain.Team
	if err := s.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &team, nil
}

// CreateTeam inserts a team; identity and timestamps come back from the row.
func (s *Store) CreateTeam(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (name, description)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return mapError(s.pool.QueryRow(ctx, query,
		team.Name,
		team.Description,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt))
}
