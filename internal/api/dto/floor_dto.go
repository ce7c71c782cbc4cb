package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// FloorCreateRequest payload for new floors.
type FloorCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoomCreateRequest payload for new rooms.
type RoomCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FloorID     int64  `json:"floor_id"`
}

// RoomUpdateRequest carries a partial room update; absent fields are left
// unchanged.
type RoomUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FloorID     *int64  `json:"floor_id"`
}

// RoomResponse is the public view of a room.
type RoomResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FloorID     int64     `json:"floor_id"`
	TeamID      int64     `json:"team_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FloorResponse is the public view of a floor with its rooms.
type FloorResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	TeamID      int64          `json:"team_id"`
	Rooms       []RoomResponse `json:"rooms"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewRoomResponse maps a domain room.
func NewRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		FloorID:     room.FloorID,
		TeamID:      room.TeamID,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// NewFloorResponse maps a domain floor with rooms.
func NewFloorResponse(floor *domain.Floor) FloorResponse {
	rooms := make([]RoomResponse, 0, len(floor.Rooms))
	for i := range floor.Rooms {
		rooms = append(rooms, NewRoomResponse(&floor.Rooms[i]))
	}
	return FloorResponse{
		ID:          floor.ID,
		Name:        floor.Name,
		Description: floor.Description,
		TeamID:      floor.TeamID,
		Rooms:       rooms,
		CreatedAt:   floor.CreatedAt,
		UpdatedAt:   floor.UpdatedAt,
	}
}

// NewFloorResponses maps a floor list.
func NewFloorResponses(floors []domain.Floor) []FloorResponse {
	out := make([]FloorResponse, 0, len(floors))
	for i := range floors {
		out = append(out, NewFloorResponse(&floors[i]))
	}
	return out
}
