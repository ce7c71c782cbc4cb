package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/storage"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// FloorService exposes floor and room workflows. Room mutation is always
// team-guarded; the team comes from the authenticated caller, never from the
// payload.
type FloorService struct {
	floors     storage.FloorStore
	rooms      storage.RoomStore
	dispatcher events.Dispatcher
}

// NewFloorService constructs the service.
func NewFloorService(floors storage.FloorStore, rooms storage.RoomStore, dispatcher events.Dispatcher) *FloorService {
	return &FloorService{floors: floors, rooms: rooms, dispatcher: dispatcher}
}

// ListFloors returns the scope's floors with rooms attached.
func (s *FloorService) ListFloors(ctx context.Context, teamID *int64) ([]domain.Floor, error) {
	return s.floors.ListFloors(ctx, teamID)
}

// CreateFloor validates and inserts a floor under the caller's team.
func (s *FloorService) CreateFloor(ctx context.Context, teamID int64, name, description string) (*domain.Floor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("nome do andar é obrigatório", nil)
	}

	floor := &domain.Floor{
		Name:        strings.TrimSpace(name),
		Description: description,
		TeamID:      teamID,
	}
	if err := s.floors.CreateFloor(ctx, floor); err != nil {
		return nil, err
	}
	return floor, nil
}

// CreateRoom inserts a room under the caller's team. The parent floor must
// belong to that team; the room's denormalized team is stamped from the
// floor so the two can never disagree at creation.
func (s *FloorService) CreateRoom(ctx context.Context, teamID, actorID, floorID int64, name, description string) (*domain.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("nome da sala é obrigatório", nil)
	}

	floor, err := s.floors.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if floor.TeamID != teamID {
		return nil, storage.ErrAccessDenied
	}

	room := &domain.Room{
		Name:        strings.TrimSpace(name),
		Description: description,
		FloorID:     floor.ID,
		TeamID:      floor.TeamID,
	}
	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	s.publishRoomEvent(ctx, events.EventRoomCreated, teamID, actorID, room)
	return room, nil
}

// UpdateRoom applies a partial update under the caller's team scope. A
// floor move must stay within the team.
func (s *FloorService) UpdateRoom(ctx context.Context, teamID, actorID, roomID int64, changes storage.RoomChanges) (*domain.Room, error) {
	if changes.FloorID != nil {
		floor, err := s.floors.GetFloor(ctx, *changes.FloorID)
		if err != nil {
			return nil, err
		}
		if floor.TeamID != teamID {
			return nil, storage.ErrAccessDenied
		}
	}

	room, err := s.rooms.UpdateRoom(ctx, roomID, teamID, changes)
	if err != nil {
		return nil, err
	}

	s.publishRoomEvent(ctx, events.EventRoomUpdated, teamID, actorID, room)
	return room, nil
}

// DeleteRoom removes a room under the caller's team scope.
func (s *FloorService) DeleteRoom(ctx context.Context, teamID, actorID, roomID int64) error {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if err := s.rooms.DeleteRoom(ctx, roomID, teamID); err != nil {
		return err
	}

	s.publishRoomEvent(ctx, events.EventRoomDeleted, teamID, actorID, room)
	return nil
}

func (s *FloorService) publishRoomEvent(ctx context.Context, eventType events.EventType, teamID, actorID int64, room *domain.Room) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TeamID:    teamID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload: events.RoomEventPayload{
			RoomID:  room.ID,
			FloorID: room.FloorID,
			Name:    room.Name,
		},
	})
}
