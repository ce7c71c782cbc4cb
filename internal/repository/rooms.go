package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

const roomColumns = `id, name, description, floor_id, team_id, created_at, updated_at`

// CreateRoom inserts a room. The caller stamps TeamID from the parent floor.
func (s *Store) CreateRoom(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (name, description, floor_id, team_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return mapError(s.pool.QueryRow(ctx, query,
		room.Name,
		room.Description,
		room.FloorID,
		room.TeamID,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt))
}

// GetRoom fetches a room by identity.
func (s *Store) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE id=$1`
	var room domain.Room
	if err := s.pool.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.FloorID,
		&room.TeamID,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &room, nil
}

// UpdateRoom merges the non-nil change fields, refreshing updated_at. The
// statement itself carries the team guard, so a cross-team attempt mutates
// nothing; the follow-up read distinguishes absent from denied.
func (s *Store) UpdateRoom(ctx context.Context, id, teamID int64, changes storage.RoomChanges) (*domain.Room, error) {
	const query = `
        UPDATE rooms SET
            name=COALESCE($1, name),
            description=COALESCE($2, description),
            floor_id=COALESCE($3, floor_id),
            updated_at=NOW()
        WHERE id=$4 AND team_id=$5
        RETURNING ` + roomColumns
	var room domain.Room
	err := s.pool.QueryRow(ctx, query,
		changes.Name,
		changes.Description,
		changes.FloorID,
		id,
		teamID,
	).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.FloorID,
		&room.TeamID,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, storage.ErrNotFound) {
			return nil, s.roomScopeError(ctx, id)
		}
		return nil, mapped
	}
	return &room, nil
}

// DeleteRoom removes a room under the same team guard as UpdateRoom.
func (s *Store) DeleteRoom(ctx context.Context, id, teamID int64) error {
	const query = `DELETE FROM rooms WHERE id=$1 AND team_id=$2`
	cmd, err := s.pool.Exec(ctx, query, id, teamID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return s.roomScopeError(ctx, id)
	}
	return nil
}

// roomScopeError reports why a guarded room mutation matched nothing:
// ErrAccessDenied when the record exists under another team, ErrNotFound
// otherwise.
func (s *Store) roomScopeError(ctx context.Context, id int64) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rooms WHERE id=$1)`, id).Scan(&exists); err != nil {
		return mapError(err)
	}
	if exists {
		return storage.ErrAccessDenied
	}
	return storage.ErrNotFound
}
