package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ListFloors returns floors with rooms attached. Two queries regardless of
// floor count: one for the floor set, one for every room in the same scope,
// grouped by floor in memory.
func (s *Store) ListFloors(ctx context.Context, teamID *int64) ([]domain.Floor, error) {
	floors, err := s.listFloorRecords(ctx, teamID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.listRoomRecords(ctx, teamID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]domain.Room, len(floors))
	for _, room := range rooms {
		grouped[room.FloorID] = append(grouped[room.FloorID], room)
	}
	for i := range floors {
		floors[i].Rooms = grouped[floors[i].ID]
		if floors[i].Rooms == nil {
			floors[i].Rooms = []domain.Room{}
		}
	}
	return floors, nil
}

func (s *Store) listFloorRecords(ctx context.Context, teamID *int64) ([]domain.Floor, error) {
	query := `
        SELECT id, name, description, team_id, created_at, updated_at
        FROM floors`
	args := []any{}
	if teamID != nil {
		query += ` WHERE team_id=$1`
		args = append(args, *teamID)
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	floors := []domain.Floor{}
	for rows.Next() {
		var floor domain.Floor
		if err := rows.Scan(&floor.ID, &floor.Name, &floor.Description, &floor.TeamID, &floor.CreatedAt, &floor.UpdatedAt); err != nil {
			return nil, err
		}
		floors = append(floors, floor)
	}
	return floors, rows.Err()
}

func (s *Store) listRoomRecords(ctx context.Context, teamID *int64) ([]domain.Room, error) {
	query := `
        SELECT id, name, description, floor_id, team_id, created_at, updated_at
        FROM rooms`
	args := []any{}
	if teamID != nil {
		query += ` WHERE team_id=$1`
		args = append(args, *teamID)
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows pgx.Rows) ([]domain.Room, error) {
	rooms := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.FloorID, &room.TeamID, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// GetFloor fetches a floor by identity, without rooms.
func (s *Store) GetFloor(ctx context.Context, id int64) (*domain.Floor, error) {
	const query = `
        SELECT id, name, description, team_id, created_at, updated_at
        FROM floors WHERE id=$1`
	var floor domain.Floor
	if err := s.pool.QueryRow(ctx, query, id).Scan(
		&floor.ID,
		&floor.Name,
		&floor.Description,
		&floor.TeamID,
		&floor.CreatedAt,
		&floor.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &floor, nil
}

// CreateFloor inserts a floor; identity and timestamps come back from the row.
func (s *Store) CreateFloor(ctx context.Context, floor *domain.Floor) error {
	const query = `
        INSERT INTO floors (name, description, team_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return mapError(s.pool.QueryRow(ctx, query,
		floor.Name,
		floor.Description,
		floor.TeamID,
	).Scan(&floor.ID, &floor.CreatedAt, &floor.UpdatedAt))
}
