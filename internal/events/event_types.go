package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssetCreated EventType = "asset_created"
	EventAssetUpdated EventType = "asset_updated"
	EventAssetDeleted EventType = "asset_deleted"
	EventRoomCreated  EventType = "room_created"
	EventRoomUpdated  EventType = "room_updated"
	EventRoomDeleted  EventType = "room_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TeamID    int64       `json:"team_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssetEventPayload describes the asset an event refers to.
type AssetEventPayload struct {
	AssetID int64  `json:"asset_id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
}

// RoomEventPayload describes the room an event refers to.
type RoomEventPayload struct {
	RoomID  int64  `json:"room_id"`
	FloorID int64  `json:"floor_id"`
	Name    string `json:"name"`
}
